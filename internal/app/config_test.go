package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/lsbmorph-backend/internal/data/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("PORT", "")
	t.Setenv("VMAX_PERCENTILE", "")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 99.0, cfg.VMaxPercentile)
	require.Equal(t, 99.7, cfg.VMaxPercentileRaw)
	require.Equal(t, 10, cfg.RecentLimit)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsbmorph.yaml")
	yml := `
port: "9000"
db_driver: sqlite
database_url: /tmp/lsb.db
access_token_ttl: 2h
vmax_percentile: 98.5
cors_origins:
  - https://a.example.org
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "9100")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("VMAX_PERCENTILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Port, "env overrides file")
	require.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 98.5, cfg.VMaxPercentile)
	require.Equal(t, []string{"https://a.example.org"}, cfg.CORSOrigins)
	require.Equal(t, db.Config{Driver: "sqlite", DSN: "/tmp/lsb.db"}, cfg.DBConfig())
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig(nil)
	require.Error(t, err)
}

func TestDBConfigFallbacks(t *testing.T) {
	cfg := defaultConfig()
	cfg.Postgres.Password = "pw"
	require.Equal(t, "postgres://postgres:pw@localhost:5432/lsbmorph?sslmode=disable", cfg.DBConfig().DSN)

	cfg.DBDriver = db.DriverSQLite
	require.Equal(t, "lsbmorph.db", cfg.DBConfig().DSN)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	require.Nil(t, splitList(" , "))
}
