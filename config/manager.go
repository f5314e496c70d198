package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	defaultConfigPath = "config/app.yaml"
	envPrefix         = "CHARTD_"
)

func Load() (*AppConfig, error) {
	return LoadFrom(resolveConfigPath())
}

// LoadFrom reads cfgPath when it exists, then the environment.
func LoadFrom(cfgPath string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if st, err := os.Stat(cfgPath); err == nil && !st.IsDir() {
		if err := cleanenv.ReadConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	applyEnvAliases(cfg)
	normalizeConfig(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvAliases(cfg *AppConfig) {
	if cfg == nil {
		return
	}
	if v := getEnv("ENV", "APP_ENV"); v != "" {
		cfg.AppEnv = strings.TrimSpace(v)
	}
	if v := getEnv("PORT", envPrefix+"PORT"); v != "" {
		cfg.ListenAddr = listenAddrWithPort(cfg.ListenAddr, v)
	}
	if v := getEnv("DATABASE_URL"); v != "" && strings.TrimSpace(cfg.Journal.URL) == "" {
		cfg.Journal.URL = strings.TrimSpace(v)
	}
	if v := getEnv("DATA_PATH", envPrefix+"DATA_PATH"); v != "" {
		cfg.Journal.Path = filepathJoin(strings.TrimSpace(v), "chartd.db")
	}
}

func normalizeConfig(cfg *AppConfig) {
	if cfg == nil {
		return
	}
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Render.Background = strings.TrimSpace(cfg.Render.Background)
	cfg.Journal.Driver = strings.ToLower(strings.TrimSpace(cfg.Journal.Driver))
	cfg.Journal.Path = strings.TrimSpace(cfg.Journal.Path)
	cfg.Journal.URL = strings.TrimSpace(cfg.Journal.URL)
	cfg.Journal.PruneSchedule = strings.TrimSpace(cfg.Journal.PruneSchedule)
	cfg.Observability.MetricsToken = strings.TrimSpace(cfg.Observability.MetricsToken)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "0.0.0.0:8084"
	}
	if cfg.Journal.Driver == "pg" {
		cfg.Journal.Driver = "postgres"
	}
	if cfg.Journal.Driver == "" {
		if cfg.Journal.URL != "" {
			cfg.Journal.Driver = "postgres"
		} else {
			cfg.Journal.Driver = "sqlite"
		}
	}
	if cfg.Render.Background == "" {
		cfg.Render.Background = "#292929"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func getEnv(keys ...string) string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

func resolveConfigPath() string {
	if v := getEnv("APP_CONFIG", envPrefix+"APP_CONFIG"); v != "" {
		return strings.TrimSpace(v)
	}
	return defaultConfigPath
}

func listenAddrWithPort(currentAddr, portRaw string) string {
	port := strings.TrimSpace(portRaw)
	if port == "" {
		return currentAddr
	}
	if _, err := strconv.Atoi(port); err != nil {
		return currentAddr
	}
	host := "0.0.0.0"
	parts := strings.Split(strings.TrimSpace(currentAddr), ":")
	if len(parts) > 1 {
		host = strings.Join(parts[:len(parts)-1], ":")
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return host + ":" + port
}

func filepathJoin(base, leaf string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return leaf
	}
	base = strings.TrimRight(base, "/\\")
	return base + string(os.PathSeparator) + leaf
}
