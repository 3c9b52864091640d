package database

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL, or SQLite when
// DB_DRIVER is sqlite
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	if env.DB_DRIVER == DriverSQLite {
		return openGORM(sqlite.Open(env.DB_PATH), gormLogger, true)
	}
	return openGORM(postgres.Open(postgresURL(env)), gormLogger, false)
}

// NewSQLiteStore opens a quiet SQLite-backed store. Pass ":memory:" for a
// throwaway database.
func NewSQLiteStore(path string) (*GORMStore, error) {
	return openGORM(sqlite.Open(path), logger.Default.LogMode(logger.Silent), true)
}

func openGORM(dialector gorm.Dialector, gormLogger logger.Interface, singleConn bool) (*GORMStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            !singleConn,
	})
	if err != nil {
		log.Printf("Unable to connect to %s with GORM: %v", dialector.Name(), err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if singleConn {
		// SQLite serialises writers, and an in-memory database lives only as
		// long as its one connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Printf("Successfully connected to %s with GORM.", dialector.Name())

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate...")

	if err := s.db.AutoMigrate(
		&model.Task{},
		&model.CronJobLog{},
	); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *GORMStore) Tasks() TaskRepository {
	return &gormTaskRepository{db: s.db}
}

func (s *GORMStore) Transaction(ctx context.Context, fn func(repo TaskRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTaskRepository{db: tx})
	})
}

type gormTaskRepository struct {
	db *gorm.DB
}

// FindAll retrieves all tasks ordered by id
func (r *gormTaskRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID retrieves a task by its ID
func (r *gormTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Save inserts or fully overwrites a task. Save writes every column, so nil
// optional fields become NULL.
func (r *gormTaskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task by primary key
func (r *gormTaskRepository) Delete(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, task.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
