// Package database owns the sqlite connection lifecycle: explicit
// acquisition at startup, migration, and release at shutdown.
package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linkhub/internal/clicks"
	"linkhub/internal/config"
	"linkhub/internal/links"
	"linkhub/internal/profiles"
	"linkhub/internal/users"
)

// DBManager holds the shared gorm connection. It is constructed once at
// startup and injected into every component that needs storage access.
type DBManager struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// NewDBManager creates a database manager for the configured sqlite file.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	return &DBManager{cfg: cfg, logger: logger}
}

// NewDBManagerWithConnection wraps an already opened connection. Tests use it
// to run managed components against an in-memory database.
func NewDBManagerWithConnection(db *gorm.DB, logger *slog.Logger) *DBManager {
	return &DBManager{cfg: config.GetConfig(), logger: logger, db: db}
}

// Init opens the database connection and configures the pool.
// WAL mode keeps readers unblocked during click-event writes; foreign keys
// must be switched on per-connection for the cascade deletes to apply.
func (dm *DBManager) Init() error {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate",
		dm.cfg.DatabaseName)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dm.cfg.DatabaseName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(dm.cfg.GetMaxOpenConns())
	sqlDB.SetMaxIdleConns(dm.cfg.GetMaxIdleConns())

	dm.db = db
	dm.logger.Info("Database connection established",
		slog.String("path", dm.cfg.DatabaseName),
		slog.Int("max_open_conns", dm.cfg.GetMaxOpenConns()))
	return nil
}

// GetConnection returns the shared gorm handle.
func (dm *DBManager) GetConnection() *gorm.DB {
	return dm.db
}

// MigrateDatabase runs all model migrations.
func (dm *DBManager) MigrateDatabase() error {
	if dm.db == nil {
		return gorm.ErrInvalidDB
	}

	// Run migrations in a transaction
	err := dm.db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&users.User{},
			&profiles.Profile{},
			&links.Link{},
			&clicks.ClickEvent{},
		)
	})
	if err != nil {
		dm.logger.Error("Failed to auto-migrate database", slog.Any("error", err))
		return err
	}

	dm.logger.Info("Database migration completed successfully")
	return nil
}

// Close releases the underlying connection pool.
func (dm *DBManager) Close() error {
	if dm.db == nil {
		return nil
	}
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
