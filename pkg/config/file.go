package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		ScreenWidth:  ptr.To(1920),
		ScreenHeight: ptr.To(1080),
		Tablet:       ptr.To("Wacom Intuos Pro"),
		// Custom dimensions have no sensible default; the operator must
		// enter them before selecting the custom tablet.
		CountdownTicks:        ptr.To(calibration.DefaultCountdownTicks),
		SampleDurationSeconds: ptr.To(int(calibration.DefaultSampleDuration / time.Second)),
		SampleIntervalMillis:  ptr.To(int(calibration.DefaultSampleInterval / time.Millisecond)),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	ScreenWidth           *int     `json:"screenWidth,omitempty"`
	ScreenHeight          *int     `json:"screenHeight,omitempty"`
	Tablet                *string  `json:"tablet,omitempty"`
	TabletWidthMm         *float64 `json:"tabletWidthMm,omitempty"`
	TabletHeightMm        *float64 `json:"tabletHeightMm,omitempty"`
	CountdownTicks        *int     `json:"countdownTicks,omitempty"`
	SampleDurationSeconds *int     `json:"sampleDurationSeconds,omitempty"`
	SampleIntervalMillis  *int     `json:"sampleIntervalMillis,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		ScreenWidth:           ptr.To(c.ScreenWidth()),
		ScreenHeight:          ptr.To(c.ScreenHeight()),
		Tablet:                ptr.To(c.Tablet()),
		CountdownTicks:        ptr.To(c.CountdownTicks()),
		SampleDurationSeconds: ptr.To(c.SampleDurationSeconds()),
		SampleIntervalMillis:  ptr.To(c.SampleIntervalMillis()),
	}
	if w, h, ok := c.CustomTabletSize(); ok {
		rawConfig.TabletWidthMm = ptr.To(w)
		rawConfig.TabletHeightMm = ptr.To(h)
	}

	return rawConfig, nil
}

func (f *File) ScreenWidth() int {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.ScreenWidth, *defaultFileConfig.ScreenWidth)
}

func (f *File) ScreenHeight() int {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.ScreenHeight, *defaultFileConfig.ScreenHeight)
}

func (f *File) Tablet() string {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Tablet, *defaultFileConfig.Tablet)
}

func (f *File) CustomTabletSize() (float64, float64, bool) {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.TabletWidthMm == nil || f.c.TabletHeightMm == nil {
		return 0, 0, false
	}
	return *f.c.TabletWidthMm, *f.c.TabletHeightMm, true
}

func (f *File) CountdownTicks() int {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.CountdownTicks, *defaultFileConfig.CountdownTicks)
}

func (f *File) SampleDurationSeconds() int {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.SampleDurationSeconds, *defaultFileConfig.SampleDurationSeconds)
}

func (f *File) SampleIntervalMillis() int {
	f.mustLoaded()
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.SampleIntervalMillis, *defaultFileConfig.SampleIntervalMillis)
}

func (f *File) SetScreenSize(width, height int) {
	f.mustLoaded()
	if width <= 0 || height <= 0 {
		panic("screen size must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ScreenWidth = &width
	f.c.ScreenHeight = &height
}

func (f *File) SetTablet(name string) {
	f.mustLoaded()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Tablet = &name
}

func (f *File) SetCustomTabletSize(widthMm, heightMm float64) {
	f.mustLoaded()
	if !(widthMm > 0) || !(heightMm > 0) {
		panic("custom tablet size must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.TabletWidthMm = &widthMm
	f.c.TabletHeightMm = &heightMm
}

func (f *File) SetCountdownTicks(i int) {
	f.mustLoaded()
	if i < 0 {
		panic("countdown must not be negative")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.CountdownTicks = &i
}

func (f *File) SetSampleDurationSeconds(i int) {
	f.mustLoaded()
	if i <= 0 {
		panic("sample duration must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SampleDurationSeconds = &i
}

func (f *File) SetSampleIntervalMillis(i int) {
	f.mustLoaded()
	if i <= 0 {
		panic("sample interval must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SampleIntervalMillis = &i
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}
	if f.filepath == "" {
		return pkgerrors.New("config has no file path")
	}

	if err := os.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create directory for %s", f.filepath)
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	f.mustLoaded()

	fields := logrus.Fields{
		"screenWidth":           f.ScreenWidth(),
		"screenHeight":          f.ScreenHeight(),
		"tablet":                f.Tablet(),
		"countdownTicks":        f.CountdownTicks(),
		"sampleDurationSeconds": f.SampleDurationSeconds(),
		"sampleIntervalMillis":  f.SampleIntervalMillis(),
	}
	if w, h, ok := f.CustomTabletSize(); ok {
		fields["customTabletWidthMm"] = w
		fields["customTabletHeightMm"] = h
	}
	return fields
}

func (f *File) mustLoaded() {
	if f.c == nil {
		panic("config is nil")
	}
}
