package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server               ServerConfig     `yaml:"server"`
	Database             DatabaseConfig   `yaml:"database"`
	Auth                 AuthConfig       `yaml:"auth"`
	Meals                MealsConfig      `yaml:"meals"`
	SpecialRegistrations map[string]int64 `yaml:"special_registrations"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds the JWT signing configuration.
type AuthConfig struct {
	Issuer           string        `yaml:"issuer"`
	SigningKey       string        `yaml:"signing_key"`
	AccessTTLMinutes int           `yaml:"access_ttl_minutes"`
	RefreshTTLHours  int           `yaml:"refresh_ttl_hours"`
	AccessTTL        time.Duration `yaml:"-"` // Ignored by YAML parser
	RefreshTTL       time.Duration `yaml:"-"`
}

// MealWindowConfig holds the service window for a single meal type.
type MealWindowConfig struct {
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

// MealsConfig holds the service windows for both meals plus the global
// early/late tolerance in minutes.
type MealsConfig struct {
	Lunch          MealWindowConfig `yaml:"lunch"`
	Dinner         MealWindowConfig `yaml:"dinner"`
	EarlyThreshold int              `yaml:"early_threshold"`
	LateThreshold  int              `yaml:"late_threshold"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "mealtrack-backend"
	}
	if cfg.Auth.AccessTTLMinutes <= 0 {
		cfg.Auth.AccessTTLMinutes = 30
	}
	if cfg.Auth.RefreshTTLHours <= 0 {
		cfg.Auth.RefreshTTLHours = 24 * 7
	}
	cfg.Auth.AccessTTL = time.Duration(cfg.Auth.AccessTTLMinutes) * time.Minute
	cfg.Auth.RefreshTTL = time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour

	if cfg.Meals.Lunch.StartTime == "" || cfg.Meals.Lunch.EndTime == "" {
		cfg.Meals.Lunch = MealWindowConfig{StartTime: "12:00", EndTime: "15:00"}
	}
	if cfg.Meals.Dinner.StartTime == "" || cfg.Meals.Dinner.EndTime == "" {
		cfg.Meals.Dinner = MealWindowConfig{StartTime: "19:00", EndTime: "22:30"}
	}
	if cfg.Meals.EarlyThreshold <= 0 {
		log.Printf("meals.early_threshold is not set or invalid; defaulting to 30")
		cfg.Meals.EarlyThreshold = 30
	}
	if cfg.Meals.LateThreshold <= 0 {
		log.Printf("meals.late_threshold is not set or invalid; defaulting to 30")
		cfg.Meals.LateThreshold = 30
	}
}
