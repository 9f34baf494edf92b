// Package dbtest starts a throwaway migrated Postgres in Docker for integration tests.
package dbtest

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/fleetdepot/depot/internal/db"
)

// ErrSkipped is returned when integration tests are disabled or Docker is unreachable.
var ErrSkipped = errors.New("postgres integration tests skipped")

// Start runs postgres:16-alpine, waits until it accepts connections and applies
// every migration. The returned func purges the container.
func Start() (string, func(), error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	if testing.Short() || os.Getenv("DEPOT_SKIP_DOCKER") != "" {
		return "", func() {}, ErrSkipped
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", func() {}, fmt.Errorf("%w: %v", ErrSkipped, err)
	}
	if err = pool.Client.Ping(); err != nil {
		return "", func() {}, fmt.Errorf("%w: %v", ErrSkipped, err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=depot",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=depot",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", func() {}, fmt.Errorf("pool.RunWithOptions -> %w", err)
	}
	purge := func() { _ = pool.Purge(resource) }
	_ = resource.Expire(300)

	url := fmt.Sprintf("postgres://depot:secret@%s/depot?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 90 * time.Second
	err = pool.Retry(func() error {
		gdb, err := db.OpenPostgresWithURL(url)
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return sqlDB.Ping()
	})
	if err != nil {
		purge()
		return "", func() {}, fmt.Errorf("pool.Retry -> %w", err)
	}

	if err = db.MigrateUp(url); err != nil {
		purge()
		return "", func() {}, fmt.Errorf("db.MigrateUp -> %w", err)
	}

	return url, purge, nil
}
