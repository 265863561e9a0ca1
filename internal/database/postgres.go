package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Manager struct {
	DB     *sql.DB
	logger *zap.Logger
}

type Config struct {
	ConnectionString string
	Host             string
	Port             string
	User             string
	Password         string
	DBName           string
}

func (c Config) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName,
	)
}

// NewManager opens the database once for the lifetime of the process and
// makes sure the emails table exists.
func NewManager(cfg Config, logger *zap.Logger) (*Manager, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to the database", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))

	manager, err := newManager(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return manager, nil
}

func newManager(db *sql.DB, logger *zap.Logger) (*Manager, error) {
	manager := &Manager{DB: db, logger: logger}

	if err := manager.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return manager, nil
}

func (m *Manager) runMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS emails (
			email TEXT NOT NULL UNIQUE
		)`,
	}

	for i, migration := range migrations {
		if _, err := m.DB.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	m.logger.Info("database migrations completed", zap.Int("count", len(migrations)))
	return nil
}

func (m *Manager) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

func (m *Manager) GetDB() *sql.DB {
	return m.DB
}
