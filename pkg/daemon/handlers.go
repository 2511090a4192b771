package daemon

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/preset"
	"github.com/penarea/penarea/pkg/version"
)

// Preset is one entry of GET /presets.
type Preset struct {
	Name     string  `json:"name"`
	WidthMm  float64 `json:"widthMm,omitempty"`
	HeightMm float64 `json:"heightMm,omitempty"`
	Custom   bool    `json:"custom,omitempty"`
}

// ConvertRequest is the body of POST /convert. A tablet with a preset name
// and no dimensions is looked up in the catalog.
type ConvertRequest struct {
	Box    area.BoundingBox   `json:"box"`
	Screen area.ScreenProfile `json:"screen"`
	Tablet area.TabletProfile `json:"tablet"`
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func getPresets(c *gin.Context) {
	var presets []Preset
	for _, p := range preset.Profiles() {
		presets = append(presets, Preset{Name: p.Name, WidthMm: p.WidthMm, HeightMm: p.HeightMm})
	}
	presets = append(presets, Preset{Name: preset.Custom, Custom: true})
	c.IndentedJSON(http.StatusOK, presets)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func setScreen(c *gin.Context) {
	var s area.ScreenProfile
	if err := c.BindJSON(&s); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := s.Validate(); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetScreenSize(s.WidthPx, s.HeightPx)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set screen size to %dx%d", s.WidthPx, s.HeightPx)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func setTablet(c *gin.Context) {
	var t area.TabletProfile
	if err := c.BindJSON(&t); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if preset.IsCustom(t.Name) {
		if err := t.Validate(); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			_ = c.AbortWithError(http.StatusBadRequest, err)
			return
		}
		conf.SetCustomTabletSize(t.WidthMm, t.HeightMm)
	} else if _, ok := preset.Lookup(t.Name); !ok {
		c.IndentedJSON(http.StatusBadRequest, preset.ErrUnknownPreset.Error())
		_ = c.AbortWithError(http.StatusBadRequest, preset.ErrUnknownPreset)
		return
	}

	conf.SetTablet(t.Name)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set tablet to %s", t.Name)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	tablet := req.Tablet
	if tablet.WidthMm == 0 && tablet.HeightMm == 0 {
		if p, ok := preset.Lookup(tablet.Name); ok {
			tablet = p
		}
	}

	if req.Box.MinX > req.Box.MaxX || req.Box.MinY > req.Box.MaxY {
		err := area.NewInvalidInputError("bounding box", req.Box.String(), "min must not exceed max")
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	res, err := area.Convert(req.Box, req.Screen, tablet)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	c.IndentedJSON(http.StatusOK, res)
}

func getCalibration(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, controller.Status())
}

func startCalibration(c *gin.Context) {
	cfg, err := config.CalibrationConfig(conf)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	err = controller.Start(cfg, func(res *area.Result, err error) {
		if err != nil {
			logrus.WithError(err).Warn("background calibration failed")
			return
		}
		logrus.WithField("samples", res.SampleCount).Info("background calibration finished")
	})
	if errors.Is(err, calibration.ErrCalibrationInProgress) {
		c.IndentedJSON(http.StatusConflict, err.Error())
		_ = c.AbortWithError(http.StatusConflict, err)
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	c.IndentedJSON(http.StatusAccepted, "calibration started")
}

func streamEvents(c *gin.Context) {
	ch := sseHub.Subscribe()
	defer sseHub.Unsubscribe(ch)

	// Send headers right away so clients know the subscription is live.
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
