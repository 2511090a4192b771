package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/calibration"
	"github.com/penarea/penarea/pkg/config"
)

// Preset mirrors one entry of the daemon's preset list.
type Preset struct {
	Name     string  `json:"name"`
	WidthMm  float64 `json:"widthMm,omitempty"`
	HeightMm float64 `json:"heightMm,omitempty"`
	Custom   bool    `json:"custom,omitempty"`
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

func (c *Client) GetPresets() ([]Preset, error) {
	ret, err := c.Get("/presets")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get presets")
	}
	var presets []Preset
	if err := json.Unmarshal([]byte(ret), &presets); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal presets")
	}
	return presets, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) SetScreen(s area.ScreenProfile) (string, error) {
	return c.putJSON("/screen", s)
}

func (c *Client) SetTablet(t area.TabletProfile) (string, error) {
	return c.putJSON("/tablet", t)
}

func (c *Client) Convert(box area.BoundingBox, screen area.ScreenProfile, tablet area.TabletProfile) (*area.Result, error) {
	payload, err := json.Marshal(map[string]any{
		"box":    box,
		"screen": screen,
		"tablet": tablet,
	})
	if err != nil {
		return nil, err
	}
	ret, err := c.Post("/convert", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to convert bounding box")
	}
	var res area.Result
	if err := json.Unmarshal([]byte(ret), &res); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal conversion result")
	}
	return &res, nil
}

func (c *Client) StartCalibration() (string, error) {
	return c.Post("/calibration/start", "")
}

func (c *Client) GetCalibrationStatus() (*calibration.Status, error) {
	ret, err := c.Get("/calibration")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get calibration status")
	}
	var st calibration.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal calibration status")
	}
	return &st, nil
}

func (c *Client) putJSON(path string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return c.Put(path, string(payload))
}
