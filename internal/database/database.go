package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nuuxixv/MindConnect/internal/config"
	"github.com/nuuxixv/MindConnect/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm dialector for the configured driver. An explicit
// DSN wins over the discrete host/port/user settings.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DatabaseURL
	switch cfg.DBDriver {
	case "postgres":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
			)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
			)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		if dsn == "" {
			dsn = cfg.DBName + ".db"
		}
		return sqlite.Open(SQLiteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns foreign key enforcement on, which SQLite leaves off by default.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_fk=1&_busy_timeout=5000"
}

func Connect(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return Open(dialector, log)
}

func Open(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if log != nil {
		log.Info("database connected", "driver", dialector.Name())
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB, log *slog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AuthSession{},
		&models.Profile{},
		&models.Test{},
		&models.Question{},
		&models.TestResult{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if log != nil {
		log.Info("database migrated")
	}
	return nil
}
