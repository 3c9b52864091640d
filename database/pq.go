package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/task-manager-api/config"
)

// PostgreSQLStore talks to Postgres through database/sql and lib/pq with
// hand-written SQL, bypassing GORM.
type PostgreSQLStore struct {
	db *sql.DB
}

func Start(env *config.EnvironmentVariable) (*PostgreSQLStore, error) {
	db, err := sql.Open("postgres", postgresURL(env))
	if err != nil {
		log.Println("Unable to Start PostgreSQL Database.")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL Database.")
	return NewPostgreSQLStore(db), nil
}

// NewPostgreSQLStore wraps an open lib/pq connection pool
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{
		db: db,
	}
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

func (s *PostgreSQLStore) GetDB() interface{} {
	return s.db
}

func (s *PostgreSQLStore) Tasks() TaskRepository {
	return &sqlTaskRepository{q: s.db}
}

func (s *PostgreSQLStore) Transaction(ctx context.Context, fn func(repo TaskRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&sqlTaskRepository{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Println("Rollback failed:", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
