package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// MomentsContour computes moments of the traced contour polygon.
	// Single pixels and one-pixel-wide lines have zero area and are skipped.
	MomentsContour = "contour"
	// MomentsArea computes moments of the blob's pixel mass.
	MomentsArea = "area"
)

// HueRange is an inclusive hue interval in 8-bit units (0-180).
type HueRange struct {
	Min int `mapstructure:"min" yaml:"min" json:"min"`
	Max int `mapstructure:"max" yaml:"max" json:"max"`
}

func (r HueRange) Contains(h uint8) bool {
	return int(h) >= r.Min && int(h) <= r.Max
}

// Detector holds the color thresholds and centroid mode of the marker detector.
type Detector struct {
	Variant       string   `mapstructure:"variant" yaml:"variant" json:"variant"`
	HueRangeA     HueRange `mapstructure:"hue_range_a" yaml:"hue_range_a" json:"hue_range_a"`
	HueRangeB     HueRange `mapstructure:"hue_range_b" yaml:"hue_range_b" json:"hue_range_b"`
	SaturationMin int      `mapstructure:"saturation_min" yaml:"saturation_min" json:"saturation_min"`
	SaturationMax int      `mapstructure:"saturation_max" yaml:"saturation_max" json:"saturation_max"`
	ValueMin      int      `mapstructure:"value_min" yaml:"value_min" json:"value_min"`
	ValueMax      int      `mapstructure:"value_max" yaml:"value_max" json:"value_max"`
	Moments       string   `mapstructure:"moments" yaml:"moments" json:"moments"`
}

type Config struct {
	InputPath    string   `mapstructure:"input"`
	ReportPath   string   `mapstructure:"report"`
	OverlayDir   string   `mapstructure:"overlay"`
	Workers      int      `mapstructure:"workers"`
	DPI          int      `mapstructure:"dpi"`
	ShowStats    bool     `mapstructure:"stats"`
	BuildVersion string   `mapstructure:"-"`
	Detector     Detector `mapstructure:"detector"`
}

// DefaultDetector returns the red thresholds: two hue bands around the
// wrap-around point, saturation and value of at least 100.
func DefaultDetector() Detector {
	return Detector{
		Variant:       "red",
		HueRangeA:     HueRange{Min: 0, Max: 10},
		HueRangeB:     HueRange{Min: 160, Max: 180},
		SaturationMin: 100,
		SaturationMax: 255,
		ValueMin:      100,
		ValueMax:      255,
		Moments:       MomentsContour,
	}
}

func Default() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		DPI:      150,
		Detector: DefaultDetector(),
	}
}

// Load reads a YAML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	d := cfg.Detector
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("dpi", cfg.DPI)
	v.SetDefault("detector.variant", d.Variant)
	v.SetDefault("detector.hue_range_a.min", d.HueRangeA.Min)
	v.SetDefault("detector.hue_range_a.max", d.HueRangeA.Max)
	v.SetDefault("detector.hue_range_b.min", d.HueRangeB.Min)
	v.SetDefault("detector.hue_range_b.max", d.HueRangeB.Max)
	v.SetDefault("detector.saturation_min", d.SaturationMin)
	v.SetDefault("detector.saturation_max", d.SaturationMax)
	v.SetDefault("detector.value_min", d.ValueMin)
	v.SetDefault("detector.value_max", d.ValueMax)
	v.SetDefault("detector.moments", d.Moments)
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.DPI < 1 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	return c.Detector.Validate()
}

func (d *Detector) Validate() error {
	if err := checkHue("hue_range_a", d.HueRangeA); err != nil {
		return err
	}
	if err := checkHue("hue_range_b", d.HueRangeB); err != nil {
		return err
	}
	if err := checkChannel("saturation", d.SaturationMin, d.SaturationMax); err != nil {
		return err
	}
	if err := checkChannel("value", d.ValueMin, d.ValueMax); err != nil {
		return err
	}
	switch d.Moments {
	case MomentsContour, MomentsArea:
	default:
		return fmt.Errorf("unknown moments mode: %q", d.Moments)
	}
	return nil
}

func checkHue(name string, r HueRange) error {
	if r.Min < 0 || r.Max > 180 || r.Min > r.Max {
		return fmt.Errorf("%s: invalid range [%d, %d]", name, r.Min, r.Max)
	}
	return nil
}

func checkChannel(name string, lo, hi int) error {
	if lo < 0 || hi > 255 || lo > hi {
		return fmt.Errorf("%s: invalid range [%d, %d]", name, lo, hi)
	}
	return nil
}
