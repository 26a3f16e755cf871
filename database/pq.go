package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/careerhq/careerhq-api/config"
	_ "github.com/lib/pq"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error

	// GetDB returns *gorm.DB for GORMStore, *sql.DB for PostgreSQLStore
	GetDB() interface{}
}

// PostgreSQLStore is the raw database/sql implementation. The API server runs
// on GORMStore; this store backs the initdb command for environments that
// bootstrap the schema with plain SQL instead of AutoMigrate.
type PostgreSQLStore struct {
	db *sql.DB
}

func Start() (*PostgreSQLStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME, getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		fmt.Println("Unable to Start PostgreSQL Database.")
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL Database.")
	return &PostgreSQLStore{
		db: db,
	}, nil
}

func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgreSQL Database.")
	return s.Initialize()
}

func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgreSQL Database.")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}

// GetDB returns the underlying *sql.DB
func (s *PostgreSQLStore) GetDB() interface{} {
	return s.db
}
