package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration read from SONGBATCH_* environment variables
type Env struct {
	Log     Log
	Job     Job
	Source  Source
	Metrics Metrics
}

// Log holds logging configuration
type Log struct {
	File  string `env:"SONGBATCH_LOG_FILE"  envDefault:"download_log.log"`
	Level string `env:"SONGBATCH_LOG_LEVEL" envDefault:"info"`
}

// Job holds download job configuration
type Job struct {
	// SpeedPollInterval is how often the speed readout is refreshed
	SpeedPollInterval time.Duration `env:"SONGBATCH_SPEED_POLL_INTERVAL" envDefault:"250ms"`
	// SearchPrefix is prepended to each track name to form the yt-dlp query
	SearchPrefix string `env:"SONGBATCH_SEARCH_PREFIX" envDefault:"ytsearch1:"`
	// ProgressFrequency is how often yt-dlp reports progress
	ProgressFrequency time.Duration `env:"SONGBATCH_PROGRESS_FREQUENCY" envDefault:"500ms"`
	// InstallYTDLP downloads yt-dlp on startup when it is not on PATH
	InstallYTDLP bool `env:"SONGBATCH_INSTALL_YTDLP" envDefault:"true"`
}

// Source holds track source configuration
type Source struct {
	SheetName  string `env:"SONGBATCH_SHEET_NAME"  envDefault:"Worksheet"`
	ColumnName string `env:"SONGBATCH_COLUMN_NAME" envDefault:"Track Name"`
	// TrackNamesFile receives the names extracted from spreadsheets; empty disables it
	TrackNamesFile string `env:"SONGBATCH_TRACK_NAMES_FILE" envDefault:"track_names.txt"`
}

// Metrics holds metrics endpoint configuration
type Metrics struct {
	// Addr is the listen address for /metrics; empty disables the endpoint
	Addr string `env:"SONGBATCH_METRICS_ADDR" envDefault:""`
}

// LoadEnv loads configuration from environment variables
func LoadEnv() (*Env, error) {
	cfg := &Env{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		abs, err := filepath.Abs(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		cfg.Log.File = abs
	}

	return cfg, nil
}

func (e *Env) validate() error {
	if e.Job.SpeedPollInterval <= 0 {
		return fmt.Errorf("speed poll interval must be positive, got %s", e.Job.SpeedPollInterval)
	}
	if e.Job.ProgressFrequency <= 0 {
		return fmt.Errorf("progress frequency must be positive, got %s", e.Job.ProgressFrequency)
	}
	if e.Source.ColumnName == "" {
		return fmt.Errorf("column name must not be empty")
	}
	return nil
}
