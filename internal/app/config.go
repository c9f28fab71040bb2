package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/lsbmorph-backend/internal/data/db"
	"github.com/yungbote/lsbmorph-backend/internal/platform/envutil"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

// ConfigFileEnv names the optional YAML file read before the environment.
const ConfigFileEnv = "LSBMORPH_CONFIG"

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Port        string `yaml:"port"`

	DBDriver    string         `yaml:"db_driver"`
	DatabaseURL string         `yaml:"database_url"`
	Postgres    PostgresConfig `yaml:"postgres"`
	LogSQL      bool           `yaml:"log_sql"`

	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`

	ImagesFolder      string  `yaml:"galaxy_images_folder"`
	VMaxPercentile    float64 `yaml:"vmax_percentile"`
	VMaxPercentileRaw float64 `yaml:"vmax_percentile_raw"`
	ImagesBucket      string  `yaml:"images_gcs_bucket"`

	RedisAddr     string        `yaml:"redis_addr"`
	CountCacheTTL time.Duration `yaml:"count_cache_ttl"`

	RecentLimit        int      `yaml:"recent_limit"`
	NavigationMaxSteps int      `yaml:"navigation_max_steps"`
	CORSOrigins        []string `yaml:"cors_origins"`

	OtelEnabled     bool    `yaml:"otel_enabled"`
	OtelEndpoint    string  `yaml:"otel_endpoint"`
	OtelInsecure    bool    `yaml:"otel_insecure"`
	OtelHeaders     string  `yaml:"otel_headers"`
	OtelSampleRatio float64 `yaml:"otel_sample_ratio"`
}

func defaultConfig() Config {
	return Config{
		Environment: "development",
		Port:        "8080",
		DBDriver:    db.DriverPostgres,
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "lsbmorph",
		},
		JWTSecretKey:      "defaultsecret",
		AccessTokenTTL:    24 * time.Hour,
		ImagesFolder:      "galaxy_images",
		VMaxPercentile:    99.0,
		VMaxPercentileRaw: 99.7,
		CountCacheTTL:     10 * time.Minute,
		RecentLimit:       10,
		OtelSampleRatio:   0.1,
	}
}

// LoadConfig applies defaults, then the YAML file named by LSBMORPH_CONFIG,
// then environment variables.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg, log)
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment, log)
	cfg.Port = envutil.String("PORT", cfg.Port, log)

	cfg.DBDriver = envutil.String("DB_DRIVER", cfg.DBDriver, log)
	cfg.DatabaseURL = envutil.String("DATABASE_URL", cfg.DatabaseURL, log)
	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host, log)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port, log)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User, log)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password, log)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name, log)
	cfg.LogSQL = envutil.Bool("LOG_SQL", cfg.LogSQL, log)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTL = envutil.Duration("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)

	cfg.ImagesFolder = envutil.String("GALAXY_IMAGES_FOLDER", cfg.ImagesFolder, log)
	cfg.VMaxPercentile = envutil.Float("VMAX_PERCENTILE", cfg.VMaxPercentile, log)
	cfg.VMaxPercentileRaw = envutil.Float("VMAX_PERCENTILE_RAW", cfg.VMaxPercentileRaw, log)
	cfg.ImagesBucket = envutil.String("IMAGES_GCS_BUCKET", cfg.ImagesBucket, log)

	cfg.RedisAddr = envutil.String("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.CountCacheTTL = envutil.Duration("COUNT_CACHE_TTL", cfg.CountCacheTTL, log)

	cfg.RecentLimit = envutil.Int("RECENT_LIMIT", cfg.RecentLimit, log)
	cfg.NavigationMaxSteps = envutil.Int("NAVIGATION_MAX_STEPS", cfg.NavigationMaxSteps, log)
	if raw := envutil.String("CORS_ORIGINS", "", log); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}

	cfg.OtelEnabled = envutil.Bool("OTEL_ENABLED", cfg.OtelEnabled, log)
	cfg.OtelEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OtelEndpoint, log)
	cfg.OtelInsecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OtelInsecure, log)
	cfg.OtelHeaders = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.OtelHeaders, log)
	cfg.OtelSampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.OtelSampleRatio, log)
}

// DBConfig resolves the database settings. DATABASE_URL wins; otherwise
// sqlite uses a local file and postgres is assembled from POSTGRES_*.
func (c Config) DBConfig() db.Config {
	dsn := c.DatabaseURL
	if dsn == "" {
		if strings.EqualFold(c.DBDriver, db.DriverSQLite) {
			dsn = "lsbmorph.db"
		} else {
			p := c.Postgres
			dsn = db.PostgresDSN(p.Host, p.Port, p.User, p.Password, p.Name)
		}
	}
	return db.Config{Driver: c.DBDriver, DSN: dsn, LogSQL: c.LogSQL}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
