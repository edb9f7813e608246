// Package config provides configuration management for freecam.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-freecam/engine/logging"
)

// EnvPrefix is prepended to every environment override, e.g. FREECAM_CAMERA_FOV.
const EnvPrefix = "FREECAM"

// Config holds all application configuration.
type Config struct {
	Window WindowConfig   `mapstructure:"window" yaml:"window"`
	Camera CameraConfig   `mapstructure:"camera" yaml:"camera"`
	Input  InputConfig    `mapstructure:"input" yaml:"input"`
	Engine EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Log    logging.Config `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, empty when only defaults and env applied.
	File string `mapstructure:"-" yaml:"-"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title    string `mapstructure:"title" yaml:"title"`
	Width    int    `mapstructure:"width" yaml:"width"`
	Height   int    `mapstructure:"height" yaml:"height"`
	CloseKey string `mapstructure:"close_key" yaml:"close_key"`
}

// CameraConfig configures the fly controller and the projection.
// Angles are in degrees, speeds in world units per second.
type CameraConfig struct {
	Position         []float32 `mapstructure:"position" yaml:"position"`
	Front            []float32 `mapstructure:"front" yaml:"front"`
	WorldUp          []float32 `mapstructure:"world_up" yaml:"world_up"`
	Fov              float32   `mapstructure:"fov" yaml:"fov"`
	MinFov           float32   `mapstructure:"min_fov" yaml:"min_fov"`
	MaxFov           float32   `mapstructure:"max_fov" yaml:"max_fov"`
	Near             float32   `mapstructure:"near" yaml:"near"`
	Far              float32   `mapstructure:"far" yaml:"far"`
	MovementSpeed    float32   `mapstructure:"movement_speed" yaml:"movement_speed"`
	MaxSpeed         float32   `mapstructure:"max_speed" yaml:"max_speed"`
	MouseSensitivity float32   `mapstructure:"mouse_sensitivity" yaml:"mouse_sensitivity"`
	RollSpeed        float32   `mapstructure:"roll_speed" yaml:"roll_speed"`
	BoostFactor      float32   `mapstructure:"boost_factor" yaml:"boost_factor"`
	RollBoost        float32   `mapstructure:"roll_boost" yaml:"roll_boost"`
	MovementMode     string    `mapstructure:"movement_mode" yaml:"movement_mode"` // free or planar
	ConstrainPitch   bool      `mapstructure:"constrain_pitch" yaml:"constrain_pitch"`
	Mirror           bool      `mapstructure:"mirror" yaml:"mirror"` // render the rear view each frame
}

// InputConfig maps input actions to key names (see common.KeyByName).
type InputConfig struct {
	Bindings   map[string][]string `mapstructure:"bindings" yaml:"bindings"`
	LookButton string              `mapstructure:"look_button" yaml:"look_button"`
}

// EngineConfig configures the engine loops.
type EngineConfig struct {
	TickRate         float64   `mapstructure:"tick_rate" yaml:"tick_rate"`
	FrameLimit       float64   `mapstructure:"frame_limit" yaml:"frame_limit"` // 0 = uncapped
	VSync            bool      `mapstructure:"vsync" yaml:"vsync"`
	SoftwareRenderer bool      `mapstructure:"software_renderer" yaml:"software_renderer"`
	ClearColor       []float64 `mapstructure:"clear_color" yaml:"clear_color"` // rgb or rgba in [0, 1]
	Profiling        bool      `mapstructure:"profiling" yaml:"profiling"`
	WatchConfig      bool      `mapstructure:"watch_config" yaml:"watch_config"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:    "freecam",
			Width:    1280,
			Height:   720,
			CloseKey: "escape",
		},
		Camera: CameraConfig{
			Position:         []float32{0, 0, 3},
			Front:            []float32{0, 0, -1},
			WorldUp:          []float32{0, 1, 0},
			Fov:              60,
			MinFov:           1,
			MaxFov:           125,
			Near:             0.1,
			Far:              100,
			MovementSpeed:    2.5,
			MaxSpeed:         100,
			MouseSensitivity: 0.1,
			RollSpeed:        45,
			BoostFactor:      3,
			RollBoost:        3,
			MovementMode:     "free",
			ConstrainPitch:   true,
			Mirror:           false,
		},
		Input: InputConfig{
			Bindings: map[string][]string{
				"forward":        {"w"},
				"backward":       {"s"},
				"left":           {"a"},
				"right":          {"d"},
				"up":             {"r"},
				"down":           {"f"},
				"roll_ccw":       {"q"},
				"roll_cw":        {"e"},
				"roll_reset":     {"x"},
				"boost":          {"left_shift", "right_shift"},
				"speed_modifier": {"left_control", "right_control"},
			},
			LookButton: "right",
		},
		Engine: EngineConfig{
			TickRate:         120,
			FrameLimit:       0,
			VSync:            true,
			SoftwareRenderer: false,
			ClearColor:       []float64{0.1, 0.1, 0.1, 1},
			Profiling:        false,
			WatchConfig:      false,
		},
		Log: logging.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file and FREECAM_*
// environment overrides, in that order of precedence.
// With an empty path, freecam.yaml is looked up in the working directory and in
// $HOME/.config/freecam; a missing file is not an error. An explicit path must exist.
//
// Parameters:
//   - path: config file path, or "" to search the default locations
//
// Returns:
//   - *Config: the merged configuration
//   - error: if the file cannot be read, decoded or fails validation
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Seed viper with the defaults so every key is known to AutomaticEnv.
	base, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("freecam")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "freecam"))
		}
	}

	file := ""
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		file = v.ConfigFileUsed()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// Validate reports the first structural problem in the configuration.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for name, vec := range map[string][]float32{
		"camera.position": c.Camera.Position,
		"camera.front":    c.Camera.Front,
		"camera.world_up": c.Camera.WorldUp,
	} {
		if len(vec) != 3 {
			return fmt.Errorf("%s: expected 3 components, got %d", name, len(vec))
		}
	}
	if c.Camera.MinFov <= 0 || c.Camera.MinFov > c.Camera.MaxFov {
		return fmt.Errorf("invalid fov bounds [%g, %g]", c.Camera.MinFov, c.Camera.MaxFov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.MaxSpeed < 0 {
		return fmt.Errorf("invalid max speed %g", c.Camera.MaxSpeed)
	}
	if _, err := ParseMovementMode(c.Camera.MovementMode); err != nil {
		return err
	}
	if n := len(c.Engine.ClearColor); n != 3 && n != 4 {
		return fmt.Errorf("engine.clear_color: expected 3 or 4 components, got %d", n)
	}
	if _, err := c.Window.CloseKeyCode(); err != nil {
		return err
	}
	if _, err := c.Input.RouterOptions(c.Camera.ConstrainPitch, zerolog.Nop()); err != nil {
		return err
	}
	return nil
}
