package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPath string // hcl file, created when missing
	PreloadPath  string // optional source file loaded into the buffer
	WorkDir      string // empty means a per-session temporary directory
	HistoryFile  string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SettingsPath == "" {
		return nil, errors.New("SettingsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
