package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	InputPath string `envconfig:"INPUT_PATH" required:"true"`
	ChartsDir string `envconfig:"CHARTS_DIR"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	FilterCacheSize int `envconfig:"FILTER_CACHE_SIZE" default:"256"`

	Score ScoreConfig
}

// ScoreConfig tunes the area bombing score. The weighting is deliberately
// configurable: the score is defined only by its monotonic properties,
// not by one fixed constant.
type ScoreConfig struct {
	TargetWeight     float64  `envconfig:"SCORE_TARGET_WEIGHT" default:"0.5"`
	IncendiaryWeight float64  `envconfig:"SCORE_INCENDIARY_WEIGHT" default:"0.3"`
	TonnageWeight    float64  `envconfig:"SCORE_TONNAGE_WEIGHT" default:"0.2"`
	TonnageCeiling   float64  `envconfig:"SCORE_TONNAGE_CEILING" default:"500"`
	AreaCategories   []string `envconfig:"AREA_CATEGORIES" default:"CITYAREA,CITY AREA,TOWN,TOWNAREA"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.FilterCacheSize <= 0 {
		return nil, errors.New("FILTER_CACHE_SIZE must be positive")
	}
	if cfg.Score.TargetWeight < 0 || cfg.Score.TonnageWeight < 0 {
		return nil, errors.New("SCORE_TARGET_WEIGHT and SCORE_TONNAGE_WEIGHT must not be negative")
	}
	// A positive incendiary weight keeps the score strictly monotonic in
	// incendiary share.
	if cfg.Score.IncendiaryWeight <= 0 {
		return nil, errors.New("SCORE_INCENDIARY_WEIGHT must be > 0")
	}
	if cfg.Score.TonnageCeiling <= 0 {
		return nil, errors.New("SCORE_TONNAGE_CEILING must be positive")
	}

	return &cfg, nil
}
