// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of the interleave command that can be
// supplied through the environment. Command line flags take precedence over
// the values loaded here.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"

	"v.io/v23/verror"
)

var ErrInvalidConfig = verror.NewID("InvalidConfig")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the environment configuration of the interleave command.
type Config struct {
	// Color is one of auto, always or never.
	Color string `env:"INTERLEAVE_COLOR" envDefault:"auto"`
	// Disabled runs scenarios with the sequencer disabled.
	Disabled bool `env:"INTERLEAVE_DISABLED"`
	// MaxSchedules bounds the number of schedules explored, 0 means all.
	MaxSchedules int `env:"INTERLEAVE_MAX_SCHEDULES" envDefault:"0"`
	// OTLPEndpoint is the host:port of an OTLP/HTTP trace collector. Spans
	// are only exported when it is set.
	OTLPEndpoint string `env:"INTERLEAVE_OTLP_ENDPOINT"`
	ServiceName  string `env:"INTERLEAVE_SERVICE_NAME" envDefault:"interleave"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, ErrInvalidConfig.Errorf(nil, "parse env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that the environment parser accepts but the
// command does not.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ErrInvalidConfig.Errorf(nil, "color must be one of %s, %s or %s, not %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.MaxSchedules < 0 {
		return ErrInvalidConfig.Errorf(nil, "the maximum number of schedules must not be negative, got %d", c.MaxSchedules)
	}
	return nil
}

// UseColor reports whether output written to f should be colored.
func (c Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
