/*------------------------------------------------------------------------------
* config.go : per-orientation plane tables, digitizer toggles, fit knobs and
*             selection gates loaded from a JSON configuration file
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"encoding/json"
	"fmt"
	"os"
)

/* OrientationConfig is the per-orientation-class table entry:
 * wire rotation, first-wire offset, pitch, minimum wire length and drift
 * velocity. Drift planes use classes 0/1/2; straw planes reuse 1/2. */
type OrientationConfig struct {
	Angle     float64 `json:"angle"`      /* wire rotation, rad */
	Offset    float64 `json:"offset"`     /* first-wire transverse offset, mm */
	Spacing   float64 `json:"spacing"`    /* wire-to-wire pitch, mm */
	MinLength float64 `json:"min_length"` /* minimum wire length to keep the cell, mm */
	VDrift    float64 `json:"v_drift"`    /* drift velocity, mm/ns */
}

/* DigitizerConfig holds the four digitization toggles plus the signal
 * and smearing parameters they gate. Passed by value/pointer into every
 * digitizer call; never read from a global. */
type DigitizerConfig struct {
	IncludeSignalPropagation bool `json:"include_signal_propagation"`
	IncludeHitTime           bool `json:"include_hit_time"`
	IncludeTDCSmearing       bool `json:"include_tdc_smearing"`
	UseNonSmearedTrack       bool `json:"use_non_smeared_track"`

	VSignal            float64 `json:"v_signal_mm_per_ns"`
	TDCSmearingSigmaNs float64 `json:"tdc_smearing_sigma_ns"`
	ZWindowHalfWidthMM float64 `json:"z_window_half_width_mm"`
}

/* FitConfig holds the knobs shared by the circle and line fits. */
type FitConfig struct {
	SigmaMM           float64 `json:"sigma_mm"`
	NCycles           int     `json:"n_cycles"`
	CircleCenterStep  float64 `json:"circle_center_step_mm"`
	CircleRadiusStep  float64 `json:"circle_radius_step_mm"`
	LineSlopeStep     float64 `json:"line_slope_step"`
	LineInterceptStep float64 `json:"line_intercept_step_mm"`
}

/* SelectionConfig gates events into the reconstructor. */
type SelectionConfig struct {
	MinHorizontalHits  int                `json:"min_horizontal_hits"`
	MinVerticalHits    int                `json:"min_vertical_hits"`
	FiducialXInsetMM   float64            `json:"fiducial_x_inset_mm"`
	FiducialActiveXMM  float64            `json:"fiducial_active_x_mm"`
	SuperModuleYHeight map[string]float64 `json:"supermodule_y_height_mm"`
	AllowedPDG         []int              `json:"allowed_pdg"`
}

/* Config is the full, JSON-loadable configuration for one reconstruction run:
 * the per-orientation table, digitizer toggles, fit knobs and selection
 * gates. One struct-of-options value covers a whole run; components read
 * it through the Context rather than from package state. */
type Config struct {
	Orientations map[int]OrientationConfig `json:"orientations"`
	Digitizer    DigitizerConfig           `json:"digitizer"`
	Fit          FitConfig                 `json:"fit"`
	Selection    SelectionConfig           `json:"selection"`
}

/* DefaultConfig returns the built-in configuration, used unless overridden
 * by a loaded file. */
func DefaultConfig() *Config {
	return &Config{
		Orientations: map[int]OrientationConfig{
			0: {Angle: 0, Offset: 5, Spacing: 10, MinLength: 50, VDrift: 0.05},
			1: {Angle: 1.5707963267948966, Offset: 5, Spacing: 10, MinLength: 50, VDrift: 0.05},
			2: {Angle: 0.7853981633974483, Offset: 5, Spacing: 10, MinLength: 50, VDrift: 0.05},
		},
		Digitizer: DigitizerConfig{
			IncludeSignalPropagation: true,
			IncludeHitTime:           true,
			IncludeTDCSmearing:       true,
			UseNonSmearedTrack:       false,
			VSignal:                  200,
			TDCSmearingSigmaNs:       1,
			ZWindowHalfWidthMM:       8,
		},
		Fit: FitConfig{
			SigmaMM:           0.2,
			NCycles:           3,
			CircleCenterStep:  5,
			CircleRadiusStep:  200,
			LineSlopeStep:     1e-3,
			LineInterceptStep: 1,
		},
		Selection: SelectionConfig{
			MinHorizontalHits: 5,
			MinVerticalHits:   5,
			FiducialXInsetMM:  100,
			FiducialActiveXMM: 3220,
			SuperModuleYHeight: map[string]float64{
				"A": 2000, "B": 2000, "C": 2000, "X0": 1500, "X1": 1500,
			},
			AllowedPDG: []int{13, -13}, /* muon, antimuon */
		},
	}
}

/* LoadConfig reads a JSON configuration file, falling back to DefaultConfig
 * for any top-level field the file omits. */
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sandtrack: open config %q: %w", path, err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("sandtrack: decode config %q: %w", path, err)
	}
	return cfg, nil
}

/* Save writes the configuration to path as indented JSON. */
func (c *Config) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("sandtrack: marshal config: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}

/* OrientationFor returns the configuration table entry for class, or
 * ErrInvalidGeometry if no such class is configured. */
func (c *Config) OrientationFor(class int) (OrientationConfig, error) {
	oc, ok := c.Orientations[class]
	if !ok {
		return OrientationConfig{}, fmt.Errorf("%w: no orientation class %d configured", ErrInvalidGeometry, class)
	}
	return oc, nil
}
