// Package config handles the configuration of the reveal renderer.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/esimov/lowpoly"
	"go.uber.org/zap"
)

// Config holds all settings.
type Config struct {
	Mesh      MeshConfig             `yaml:"mesh"`
	Animation lowpoly.AnimatorConfig `yaml:"animation"`
	Render    RenderConfig           `yaml:"render"`
	Logging   LoggingConfig          `yaml:"logging"`
}

// MeshConfig holds the analysis and sampling settings.
type MeshConfig struct {
	AnalyzeWidth  int     `yaml:"analyze_width"`
	AnalyzeHeight int     `yaml:"analyze_height"`
	BorderSamples int     `yaml:"border_samples"`
	EdgeSamples   int     `yaml:"edge_samples"`
	FillSamples   int     `yaml:"fill_samples"`
	EdgeGamma     float64 `yaml:"edge_gamma"`
	AttemptFactor int     `yaml:"attempt_factor"`
	Quantization  int     `yaml:"quantization"`
	Seed          int64   `yaml:"seed"` // 0 seeds from the clock
}

// RenderConfig holds the simulated display settings.
type RenderConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Density float64 `yaml:"density"`
	FPS     int     `yaml:"fps"`   // simulated refresh rate
	Every   int     `yaml:"every"` // write one frame out of every N
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			AnalyzeWidth:  lowpoly.AnalyzeWidth,
			AnalyzeHeight: lowpoly.AnalyzeHeight,
			BorderSamples: lowpoly.DefaultBorderSamples,
			EdgeSamples:   lowpoly.DefaultEdgeSamples,
			FillSamples:   lowpoly.DefaultFillSamples,
			EdgeGamma:     lowpoly.DefaultEdgeGamma,
			AttemptFactor: lowpoly.DefaultAttemptFactor,
			Quantization:  lowpoly.DefaultQuantization,
		},
		Animation: lowpoly.DefaultAnimatorConfig(),
		Render: RenderConfig{
			Width:   960,
			Height:  540,
			Density: 1,
			FPS:     60,
			Every:   30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting out of its accepted range.
func (c *Config) Validate() error {
	var errs []error

	if c.Mesh.AnalyzeWidth < 3 || c.Mesh.AnalyzeHeight < 3 {
		errs = append(errs, fmt.Errorf("analysis size %dx%d is below 3x3", c.Mesh.AnalyzeWidth, c.Mesh.AnalyzeHeight))
	}
	if c.Mesh.BorderSamples < 2 {
		errs = append(errs, fmt.Errorf("border_samples must be at least 2, got %d", c.Mesh.BorderSamples))
	}
	if c.Mesh.EdgeSamples < 0 || c.Mesh.FillSamples < 0 || c.Mesh.AttemptFactor < 0 {
		errs = append(errs, errors.New("sample counts must not be negative"))
	}
	if c.Mesh.EdgeGamma <= 0 {
		errs = append(errs, fmt.Errorf("edge_gamma must be positive, got %v", c.Mesh.EdgeGamma))
	}
	if c.Mesh.Quantization < 1 {
		errs = append(errs, fmt.Errorf("quantization must be positive, got %d", c.Mesh.Quantization))
	}
	if c.Animation.Duration <= 0 {
		errs = append(errs, fmt.Errorf("animation duration must be positive, got %v", c.Animation.Duration))
	}
	if c.Animation.Hold < 0 || c.Animation.MaxStep < 0 {
		errs = append(errs, errors.New("hold and max_step must not be negative"))
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		errs = append(errs, fmt.Errorf("render size %dx%d is empty", c.Render.Width, c.Render.Height))
	}
	if c.Render.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.Render.FPS))
	}
	return errors.Join(errs...)
}

// Processor returns a mesh processor configured from the mesh settings.
func (c *Config) Processor(log *zap.Logger) *lowpoly.Processor {
	return &lowpoly.Processor{
		AnalyzeWidth:  c.Mesh.AnalyzeWidth,
		AnalyzeHeight: c.Mesh.AnalyzeHeight,
		BorderSamples: c.Mesh.BorderSamples,
		EdgeSamples:   c.Mesh.EdgeSamples,
		FillSamples:   c.Mesh.FillSamples,
		EdgeGamma:     c.Mesh.EdgeGamma,
		AttemptFactor: c.Mesh.AttemptFactor,
		Quantization:  c.Mesh.Quantization,
		Seed:          c.Mesh.Seed,
		Logger:        log,
	}
}

// Animator returns the animator timings.
func (c *Config) Animator() lowpoly.AnimatorConfig {
	return c.Animation
}

// FrameInterval is the simulated time between two ticks.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.Render.FPS))
}
