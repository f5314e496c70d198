package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const minMetricsTokenLength = 16

func Validate(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Render.JobTimeout <= 0 {
		return fmt.Errorf("render.job_timeout must be positive")
	}
	if cfg.Render.MaxItems <= 0 {
		return fmt.Errorf("render.max_items must be positive")
	}
	if cfg.Render.MaxPixels <= 0 {
		return fmt.Errorf("render.max_pixels must be positive")
	}
	if cfg.Render.MaxBodyBytes <= 0 {
		return fmt.Errorf("render.max_body_bytes must be positive")
	}
	if !strings.HasPrefix(cfg.Render.Background, "#") {
		return fmt.Errorf("render.background must be a hex color, got %q", cfg.Render.Background)
	}
	switch cfg.Log.Format {
	case "text", "json", "console":
	default:
		return fmt.Errorf("unsupported log.format: %s", cfg.Log.Format)
	}
	if err := validateJournal(cfg.Journal); err != nil {
		return err
	}
	if !cfg.IsDev() && cfg.Observability.MetricsEnabled {
		token := cfg.Observability.MetricsToken
		if token != "" && len(token) < minMetricsTokenLength {
			return fmt.Errorf("observability.metrics_token must be at least %d characters outside APP_ENV=dev", minMetricsTokenLength)
		}
	}
	return nil
}

func validateJournal(j JournalConfig) error {
	if !j.Enabled {
		return nil
	}
	switch j.Driver {
	case "sqlite":
		if j.Path == "" {
			return fmt.Errorf("journal.path must be set for sqlite driver")
		}
	case "postgres":
		if j.URL == "" {
			return fmt.Errorf("journal.url must be set for postgres driver")
		}
	default:
		return fmt.Errorf("unsupported journal.driver: %s", j.Driver)
	}
	if j.Retention < time.Minute {
		return fmt.Errorf("journal.retention must be at least 1m")
	}
	if _, err := cron.ParseStandard(j.PruneSchedule); err != nil {
		return fmt.Errorf("journal.prune_schedule: %w", err)
	}
	return nil
}
