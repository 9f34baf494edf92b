package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
api:
  environment: test
  port: "8181"
  jwt_signing_key: secret
  jwt_ttl: 1h
  allowed_cors_domains:
    - http://localhost:3000
gin:
  mode: test
postgres:
  host: db
  port: 5433
  user: depot
  password: "p@ss"
  db: depot
etl:
  enabled: true
  source_dsn: postgres://erp@localhost/erp
  interval: 2m
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "8181", conf.API.Port)
	assert.Equal(t, time.Hour, conf.API.JWTTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, 2*time.Minute, conf.ETL.Interval)
	assert.Equal(t, 5000, conf.ETL.BatchSize)
	assert.Equal(t, 30*time.Second, conf.Redis.TTL)
	assert.Equal(t, "DEPOT_STOCK_EVENTS", conf.Kafka.StockTopic)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DEPOT_API_PORT", "9999")
	t.Setenv("DEPOT_POSTGRES_HOST", "pg.internal")

	conf, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "9999", conf.API.Port)
	assert.Equal(t, "pg.internal", conf.Postgres.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_ETLRequiresSource(t *testing.T) {
	body := `
api:
  port: "8080"
etl:
  enabled: true
`
	_, err := Load(writeConfig(t, body))
	assert.EqualError(t, err, "etl.source_dsn is required when etl is enabled")
}

func TestPostgresConfig_URL(t *testing.T) {
	c := &PostgresConfig{Host: "db", Port: 5433, User: "depot", Password: "p@ss", DB: "depot", SSLMode: "disable"}
	assert.Equal(t, "postgres://depot:p%40ss@db:5433/depot?sslmode=disable", c.URL())
}
