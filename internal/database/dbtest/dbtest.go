// Package dbtest opens migrated databases for tests. SQLite in a temporary
// directory is the default; setting MINDCONNECT_TEST_DATABASE_URL runs the
// same tests against Postgres in a throwaway schema.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const postgresEnv = "MINDCONNECT_TEST_DATABASE_URL"

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	var dialector gorm.Dialector
	if dbURL := strings.TrimSpace(os.Getenv(postgresEnv)); dbURL != "" {
		dialector = postgresDialector(t, dbURL)
	} else {
		path := filepath.Join(t.TempDir(), "mindconnect.db")
		dialector = sqlite.Open(database.SQLiteDSN(path))
	}

	db, err := database.Open(dialector, logging.Discard())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db, nil); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func postgresDialector(t *testing.T, dbURL string) gorm.Dialector {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("create postgres pool: %v", err)
	}
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	if _, err := adminPool.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		adminPool.Close()
		t.Fatalf("create schema: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		adminPool.Close()
		t.Fatalf("parse postgres config: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		adminPool.Close()
		t.Fatalf("create test postgres pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = adminPool.Exec(ctx, fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
		adminPool.Close()
	})

	return postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)})
}
