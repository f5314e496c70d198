package config

import "time"

type AppConfig struct {
	ListenAddr    string              `yaml:"listen_addr" env:"CHARTD_LISTEN_ADDR" env-default:"0.0.0.0:8084"`
	AppEnv        string              `yaml:"app_env" env:"CHARTD_APP_ENV" env-default:"prod"`
	Render        RenderConfig        `yaml:"render"`
	Journal       JournalConfig       `yaml:"journal"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

func (c *AppConfig) IsDev() bool {
	if c == nil {
		return false
	}
	return c.AppEnv == "dev"
}

type RenderConfig struct {
	JobTimeout   time.Duration `yaml:"job_timeout" env:"CHARTD_RENDER_JOB_TIMEOUT" env-default:"15s"`
	MaxItems     int           `yaml:"max_items" env:"CHARTD_RENDER_MAX_ITEMS" env-default:"32"`
	MaxPixels    int           `yaml:"max_pixels" env:"CHARTD_RENDER_MAX_PIXELS" env-default:"16777216"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"CHARTD_RENDER_MAX_BODY_BYTES" env-default:"4194304"`
	Background   string        `yaml:"background" env:"CHARTD_RENDER_BACKGROUND" env-default:"#292929"`
}

type JournalConfig struct {
	Enabled       bool          `yaml:"enabled" env:"CHARTD_JOURNAL_ENABLED" env-default:"true"`
	Driver        string        `yaml:"driver" env:"CHARTD_JOURNAL_DRIVER" env-default:"sqlite"`
	Path          string        `yaml:"path" env:"CHARTD_JOURNAL_PATH" env-default:"data/chartd.db"`
	URL           string        `yaml:"url" env:"CHARTD_JOURNAL_URL"`
	Retention     time.Duration `yaml:"retention" env:"CHARTD_JOURNAL_RETENTION" env-default:"168h"`
	PruneSchedule string        `yaml:"prune_schedule" env:"CHARTD_JOURNAL_PRUNE_SCHEDULE" env-default:"@hourly"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"CHARTD_METRICS_ENABLED" env-default:"true"`
	MetricsToken   string `yaml:"metrics_token" env:"CHARTD_METRICS_TOKEN"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"CHARTD_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"CHARTD_LOG_FORMAT" env-default:"text"`
}
