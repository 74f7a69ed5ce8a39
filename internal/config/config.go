// Package config loads application configuration via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ayusman/abhinaya/internal/classify"
	"github.com/ayusman/abhinaya/internal/stabilize"
)

// Config holds all application configuration. Everything is static for a
// session; there is no runtime mutation surface.
type Config struct {
	Detection DetectionConfig  `mapstructure:"detection"`
	Timing    stabilize.Config `mapstructure:"timing"`
	Camera    CameraConfig     `mapstructure:"camera"`
	Server    ServerConfig     `mapstructure:"server"`
	Assets    AssetsConfig     `mapstructure:"assets"`
	Log       LogConfig        `mapstructure:"log"`
}

// DetectionConfig groups the classifier thresholds and arbitration floor.
type DetectionConfig struct {
	Thresholds   classify.Thresholds `mapstructure:"thresholds"`
	GestureFloor float64             `mapstructure:"gesture_floor"`
}

// CameraConfig selects the capture device and motion sensitivity.
type CameraConfig struct {
	DeviceID        int     `mapstructure:"device_id"`
	MotionThreshold float64 `mapstructure:"motion_threshold"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	StaticDir string `mapstructure:"static_dir"`
}

// AssetsConfig locates the reaction asset catalogue.
type AssetsConfig struct {
	Dir             string `mapstructure:"dir"`
	DBPath          string `mapstructure:"db_path"`
	DefaultCategory string `mapstructure:"default_category"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from ~/.abhinaya/config.yaml (optional) with
// ABHINAYA_* environment overrides on top of the built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(home, ".abhinaya"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("abhinaya")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	t := classify.DefaultThresholds()
	v.SetDefault("detection.thresholds.eye_opening", t.EyeOpening)
	v.SetDefault("detection.thresholds.mouth_open", t.MouthOpen)
	v.SetDefault("detection.thresholds.squint", t.Squint)
	v.SetDefault("detection.thresholds.smile", t.Smile)
	v.SetDefault("detection.thresholds.brow_raise", t.BrowRaise)
	v.SetDefault("detection.thresholds.wink_ratio", t.WinkRatio)
	v.SetDefault("detection.thresholds.pucker_ratio", t.PuckerRatio)
	v.SetDefault("detection.thresholds.sleepy", t.Sleepy)
	v.SetDefault("detection.gesture_floor", 0.5)

	s := stabilize.DefaultConfig()
	v.SetDefault("timing.history_length", s.HistoryLength)
	v.SetDefault("timing.hold_time", s.HoldTime)
	v.SetDefault("timing.debounce", s.Debounce)

	v.SetDefault("camera.device_id", 0)
	v.SetDefault("camera.motion_threshold", 1.0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "")

	home, _ := os.UserHomeDir()
	v.SetDefault("assets.dir", filepath.Join(home, ".abhinaya", "assets"))
	v.SetDefault("assets.db_path", filepath.Join(home, ".abhinaya", "abhinaya.db"))
	v.SetDefault("assets.default_category", "neutral")

	v.SetDefault("log.level", "info")
}

// Validate sanity-checks the timing values.
func (c *Config) Validate() error {
	if c.Timing.HistoryLength <= 0 {
		return fmt.Errorf("timing.history_length must be positive")
	}
	if c.Timing.HoldTime < 0 || c.Timing.Debounce < 0 {
		return fmt.Errorf("timing durations must not be negative")
	}
	if c.Detection.GestureFloor < 0 || c.Detection.GestureFloor > 1 {
		return fmt.Errorf("detection.gesture_floor must be in [0,1]")
	}
	return nil
}
