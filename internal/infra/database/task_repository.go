package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, lead_id, title, assignee, assignee_email, due_date, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		task.ID,
		task.LeadID,
		task.Title,
		task.Assignee,
		nullString(task.AssigneeEmail),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return mapLeadWriteError(err)
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, lead_id, title, assignee, assignee_email, due_date, completed, completed_at, created_at, updated_at FROM tasks WHERE id = $1",
		id,
	)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

// Complete só muda tarefa aberta; repetir a conclusão é erro, não no-op.
func (r *TaskRepository) Complete(ctx context.Context, id string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET completed = true, completed_at = $2, updated_at = NOW() WHERE id = $1 AND completed = false",
		id, at,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return entity.ErrNotFound
	}
	return entity.ErrAlreadyDone
}

func (r *TaskRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, lead_id, title, assignee, assignee_email, due_date, completed, completed_at, created_at, updated_at FROM tasks WHERE lead_id = $1 ORDER BY due_date",
		leadID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	var assigneeEmail sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.LeadID,
		&task.Title,
		&task.Assignee,
		&assigneeEmail,
		&task.DueDate,
		&task.Completed,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.AssigneeEmail = stringOrEmpty(assigneeEmail)
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}
