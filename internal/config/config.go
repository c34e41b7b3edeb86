// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// Config holds everything the server needs at startup. Timezone, week
// boundary, and default privacy are fallbacks only: once a user profile
// row exists its values win.
type Config struct {
	DBPath            string
	BridgeURL         string
	NotifyEnabled     bool
	NotifySound       string
	Timezone          string
	WeekBoundary      domain.WeekBoundary
	DefaultPrivacy    domain.PrivacyLevel
	SchedulerInterval time.Duration
	LogLevel          string
}

// DefaultConfig returns a Config with defaults for everything except
// the database path, which has no default.
func DefaultConfig() Config {
	return Config{
		NotifyEnabled:     true,
		Timezone:          "UTC",
		WeekBoundary:      domain.WeekMonFri,
		DefaultPrivacy:    domain.PrivacyPrivate,
		SchedulerInterval: 60 * time.Second,
		LogLevel:          "info",
	}
}

// Load reads configuration from MOSAIC_* environment variables, falling
// back to defaults for any unset values. A missing MOSAIC_DB is a
// startup failure.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("MOSAIC_DB")
	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("MOSAIC_DB is required: %w", apperr.ErrInvalidArgument)
	}

	cfg.BridgeURL = os.Getenv("MOSAIC_BRIDGE_URL")
	if v := os.Getenv("MOSAIC_NOTIFY_ENABLED"); v != "" {
		cfg.NotifyEnabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MOSAIC_NOTIFY_SOUND"); v != "" {
		cfg.NotifySound = v
	}
	if v := os.Getenv("MOSAIC_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			return Config{}, fmt.Errorf("MOSAIC_TIMEZONE %q is not a valid zone name: %w", v, apperr.ErrInvalidArgument)
		}
		cfg.Timezone = v
	}
	if v := os.Getenv("MOSAIC_WEEK_BOUNDARY"); v != "" {
		if !domain.ValidWeekBoundaries[v] {
			return Config{}, fmt.Errorf("MOSAIC_WEEK_BOUNDARY %q must be one of mon-fri, sun-sat, mon-sun: %w", v, apperr.ErrInvalidArgument)
		}
		cfg.WeekBoundary = domain.WeekBoundary(v)
	}
	if v := os.Getenv("MOSAIC_DEFAULT_PRIVACY"); v != "" {
		if !domain.ValidPrivacyLevels[v] {
			return Config{}, fmt.Errorf("MOSAIC_DEFAULT_PRIVACY %q must be one of public, internal, private: %w", v, apperr.ErrInvalidArgument)
		}
		cfg.DefaultPrivacy = domain.PrivacyLevel(v)
	}
	if v := os.Getenv("MOSAIC_SCHEDULER_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SchedulerInterval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("MOSAIC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Location resolves the configured fallback timezone. Load has already
// verified the name.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
