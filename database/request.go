package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sahilchouksey/task-manager-api/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type sqlTaskRepository struct {
	q querier
}

func (r *sqlTaskRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, title, description, status, due_date FROM tasks ORDER BY id;`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanIntoTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

func (r *sqlTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	query := `SELECT id, title, description, status, due_date FROM tasks WHERE id = $1;`

	task, err := scanIntoTask(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return task, err
}

func (r *sqlTaskRepository) Save(ctx context.Context, task *model.Task) error {
	if task.ID == 0 {
		query := `INSERT INTO tasks (title, description, status, due_date) VALUES ($1, $2, $3, $4) RETURNING id;`
		return r.q.QueryRowContext(ctx, query,
			task.Title, task.Description, string(task.Status), task.DueDate,
		).Scan(&task.ID)
	}

	query := `UPDATE tasks SET title = $1, description = $2, status = $3, due_date = $4 WHERE id = $5;`
	result, err := r.q.ExecContext(ctx, query,
		task.Title, task.Description, string(task.Status), task.DueDate, task.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *sqlTaskRepository) Delete(ctx context.Context, task *model.Task) error {
	query := `DELETE FROM tasks WHERE id = $1;`

	result, err := r.q.ExecContext(ctx, query, task.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIntoTask(row rowScanner) (*model.Task, error) {
	task := new(model.Task)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
