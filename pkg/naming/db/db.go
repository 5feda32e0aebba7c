// Package db implements a SQL-backed naming service using GORM.
// It supports SQLite (single node, default) and PostgreSQL (shared) through
// the same codebase, following the same backend split as the rest of the
// server's persistence.
package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marmos91/resourced/pkg/naming"
)

// DatabaseType defines the supported database backends.
type DatabaseType string

const (
	// DatabaseTypeSQLite uses SQLite (single-node, default).
	DatabaseTypeSQLite DatabaseType = "sqlite"

	// DatabaseTypePostgres uses PostgreSQL.
	DatabaseTypePostgres DatabaseType = "postgres"
)

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	// Default: $XDG_CONFIG_HOME/resourced/bindings.db
	Path string `mapstructure:"path" yaml:"path"`
}

// PostgresConfig contains PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host         string `mapstructure:"host"           yaml:"host"`
	Port         int    `mapstructure:"port"           yaml:"port"`
	Database     string `mapstructure:"database"       yaml:"database"`
	User         string `mapstructure:"user"           yaml:"user"`
	Password     string `mapstructure:"password"       yaml:"password"`
	SSLMode      string `mapstructure:"ssl_mode"       yaml:"ssl_mode"` // disable, require, verify-ca, verify-full
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)
	if c.SSLMode != "" {
		dsn += fmt.Sprintf(" sslmode=%s", c.SSLMode)
	}
	return dsn
}

// Config contains database configuration for the bindings store.
type Config struct {
	Type     DatabaseType   `mapstructure:"type"     yaml:"type"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"   yaml:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = DatabaseTypeSQLite
	}

	if c.Type == DatabaseTypeSQLite && c.SQLite.Path == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
		c.SQLite.Path = filepath.Join(configDir, "resourced", "bindings.db")
	}

	if c.Type == DatabaseTypePostgres {
		if c.Postgres.Port == 0 {
			c.Postgres.Port = 5432
		}
		if c.Postgres.SSLMode == "" {
			c.Postgres.SSLMode = "disable"
		}
		if c.Postgres.MaxOpenConns == 0 {
			c.Postgres.MaxOpenConns = 25
		}
		if c.Postgres.MaxIdleConns == 0 {
			c.Postgres.MaxIdleConns = 5
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DatabaseTypePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("postgres database is required")
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("postgres user is required")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// bindingRecord is the GORM model for one published binding.
type bindingRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Application string    `gorm:"uniqueIndex:idx_app_name;size:255"`
	Name        string    `gorm:"uniqueIndex:idx_app_name;not null;size:255"`
	Payload     string    `gorm:"type:text"`
	PublishedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for bindingRecord.
func (bindingRecord) TableName() string {
	return "bindings"
}

// DBNamingService implements naming.Service on a SQL database.
type DBNamingService struct {
	db     *gorm.DB
	config *Config
}

// New opens the bindings database and migrates its schema.
func New(config *Config) (*DBNamingService, error) {
	if config == nil {
		config = &Config{}
	}
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	var dialector gorm.Dialector
	switch config.Type {
	case DatabaseTypeSQLite:
		if config.SQLite.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(config.SQLite.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// WAL for concurrent readers, busy timeout for locked-database waits
		dsn := config.SQLite.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)

	case DatabaseTypePostgres:
		dialector = postgres.Open(config.Postgres.DSN())

	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if config.Type == DatabaseTypePostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(config.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(config.Postgres.MaxIdleConns)
	}

	if err := db.AutoMigrate(&bindingRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run database migration: %w", err)
	}

	return &DBNamingService{db: db, config: config}, nil
}

// Publish implements naming.Service.
func (s *DBNamingService) Publish(ctx context.Context, info naming.ResourceInfo, payload any, rebind bool) error {
	data, err := naming.EncodePayload(payload)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing bindingRecord
		err := tx.Where("application = ? AND name = ?", info.ApplicationName, info.Name).
			First(&existing).Error
		switch {
		case err == nil:
			if !rebind {
				return naming.ErrAlreadyBound
			}
			existing.Payload = string(data)
			existing.PublishedAt = time.Now().UTC()
			return tx.Save(&existing).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			record := bindingRecord{
				ID:          uuid.NewString(),
				Application: info.ApplicationName,
				Name:        info.Name,
				Payload:     string(data),
				PublishedAt: time.Now().UTC(),
			}
			return tx.Create(&record).Error

		default:
			return fmt.Errorf("failed to check binding: %w", err)
		}
	})
}

// Unpublish implements naming.Service.
func (s *DBNamingService) Unpublish(ctx context.Context, info naming.ResourceInfo) error {
	result := s.db.WithContext(ctx).
		Where("application = ? AND name = ?", info.ApplicationName, info.Name).
		Delete(&bindingRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete binding: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return naming.ErrNotBound
	}
	return nil
}

// Lookup implements naming.Service.
func (s *DBNamingService) Lookup(ctx context.Context, info naming.ResourceInfo) (*naming.Entry, error) {
	var record bindingRecord
	err := s.db.WithContext(ctx).
		Where("application = ? AND name = ?", info.ApplicationName, info.Name).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, naming.ErrNotBound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get binding: %w", err)
	}
	return recordToEntry(&record), nil
}

// List implements naming.Service.
func (s *DBNamingService) List(ctx context.Context) ([]naming.Entry, error) {
	var records []bindingRecord
	err := s.db.WithContext(ctx).
		Order("application, name").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}

	out := make([]naming.Entry, 0, len(records))
	for i := range records {
		out = append(out, *recordToEntry(&records[i]))
	}
	return out, nil
}

// Close implements naming.Service.
func (s *DBNamingService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func recordToEntry(r *bindingRecord) *naming.Entry {
	return &naming.Entry{
		ResourceInfo: naming.ResourceInfo{
			Name:            r.Name,
			ApplicationName: r.Application,
		},
		Payload:     []byte(r.Payload),
		PublishedAt: r.PublishedAt,
	}
}
