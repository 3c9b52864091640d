package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/model"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverPQ       = "pq"
	DriverSQLite   = "sqlite"
)

// ErrNotFound is returned by a TaskRepository when no row matches
var ErrNotFound = errors.New("record not found")

// TaskRepository is the storage contract consumed by the task service
type TaskRepository interface {
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	// Save inserts the task when its ID is zero and writes the generated ID
	// back, otherwise it overwrites every column of the existing row.
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
}

// TaskStore hands out repositories, optionally bound to a transaction
type TaskStore interface {
	Tasks() TaskRepository
	// Transaction runs fn in a single unit of work, committing when fn
	// returns nil and rolling back otherwise.
	Transaction(ctx context.Context, fn func(repo TaskRepository) error) error
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	TaskStore

	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	GetDB() interface{} // Returns *gorm.DB for GORMStore, *sql.DB for PostgreSQLStore
}

// Open connects to the store selected by DB_DRIVER
func Open(env *config.EnvironmentVariable) (Storage, error) {
	switch env.DB_DRIVER {
	case DriverPostgres, DriverSQLite:
		return StartGORM(env)
	case DriverPQ:
		return Start(env)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}
}

// postgresURL builds a connection URL so credentials with spaces or quotes
// survive intact.
func postgresURL(env *config.EnvironmentVariable) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(env.DB_USER_NAME, env.DB_PASSWORD),
		Host:   env.DB_HOST + ":" + env.DB_PORT,
		Path:   "/" + env.DB_NAME,
	}
	q := url.Values{}
	q.Set("sslmode", env.DB_SSL_MODE)
	u.RawQuery = q.Encode()
	return u.String()
}
