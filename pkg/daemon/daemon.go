package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/cue"
	"github.com/penarea/penarea/pkg/events"
	"github.com/penarea/penarea/pkg/pointer"
	"github.com/penarea/penarea/pkg/sampler"
)

var (
	conf       config.Config
	controller *calibration.Controller
	sseHub     *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logrus.StandardLogger()))
	router.GET("/version", getVersion)
	router.GET("/presets", getPresets)
	router.GET("/config", getConfig)
	router.PUT("/screen", setScreen)
	router.PUT("/tablet", setTablet)
	router.POST("/convert", convert)
	router.GET("/calibration", getCalibration)
	router.POST("/calibration/start", startCalibration)
	router.GET("/events", streamEvents)

	return router
}

// Run serves the daemon API on unixSocketPath until SIGINT or SIGTERM.
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		return err
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	src, err := pointer.Default()
	if err != nil {
		return err
	}
	beep := cue.Default()
	sseHub = events.NewEventHub()
	controller = calibration.NewController(sampler.New(src, beep), beep, sseHub)

	router := setupRoutes()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// A stale socket from a crashed daemon would make Listen fail.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return err
	}

	if allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			return err
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	if controller.Busy() {
		logrus.Warn("a calibration is in progress and will be abandoned")
	}

	logrus.Info("shutting down http server")
	// Ends open event streams so Shutdown does not wait on them.
	sseHub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
