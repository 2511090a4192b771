// Package preset holds the catalog of known tablet models and their active
// surface sizes.
package preset

import (
	"errors"
	"strconv"
	"strings"

	"github.com/penarea/penarea/pkg/area"
)

// Custom is the sentinel entry whose dimensions are entered by the operator
// instead of being looked up.
const Custom = "Custom"

// ErrUnknownPreset is returned for names that are neither in the catalog nor
// the Custom sentinel. Front ends only ever offer catalog names, so this is a
// caller error.
var ErrUnknownPreset = errors.New("unknown tablet preset")

type entry struct {
	name     string
	widthMm  float64
	heightMm float64
}

// Display order matters: it is the order of the preset dropdown.
var catalog = []entry{
	{"Wacom Intuos Pro", 320, 200},
	{"Huion H610 Pro", 280, 175},
	{"XP-Pen Deco 01", 260, 160},
	{"Huion H420/420", 102, 57},
	{"Wacom CTH-680", 216, 135},
	{"Wacom CTL-472", 152, 95},
}

// Names returns every selectable name, Custom last.
func Names() []string {
	names := make([]string, 0, len(catalog)+1)
	for _, e := range catalog {
		names = append(names, e.name)
	}
	return append(names, Custom)
}

// Profiles returns the fixed-size presets.
func Profiles() []area.TabletProfile {
	profiles := make([]area.TabletProfile, 0, len(catalog))
	for _, e := range catalog {
		profiles = append(profiles, e.profile())
	}
	return profiles
}

// IsCustom reports whether name selects operator-entered dimensions.
func IsCustom(name string) bool {
	return name == Custom
}

// Lookup finds a preset by exact name. Custom is not a lookup-able preset.
func Lookup(name string) (area.TabletProfile, bool) {
	for _, e := range catalog {
		if e.name == name {
			return e.profile(), true
		}
	}
	return area.TabletProfile{}, false
}

// Resolve turns a selection into a tablet profile. For Custom, both
// customWidth and customHeight must be positive numbers; for presets they
// are ignored.
func Resolve(name, customWidth, customHeight string) (area.TabletProfile, error) {
	if IsCustom(name) {
		w, err := parseMm("tablet width", customWidth)
		if err != nil {
			return area.TabletProfile{}, err
		}
		h, err := parseMm("tablet height", customHeight)
		if err != nil {
			return area.TabletProfile{}, err
		}
		return area.TabletProfile{Name: Custom, WidthMm: w, HeightMm: h}, nil
	}

	p, ok := Lookup(name)
	if !ok {
		return area.TabletProfile{}, ErrUnknownPreset
	}
	return p, nil
}

func parseMm(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, area.NewInvalidInputError(field, "", "required for a custom tablet")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, area.NewInvalidInputError(field, value, "not a number")
	}
	if err := area.CheckTabletMm(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

func (e entry) profile() area.TabletProfile {
	return area.TabletProfile{Name: e.name, WidthMm: e.widthMm, HeightMm: e.heightMm}
}
