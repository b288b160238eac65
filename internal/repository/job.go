package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/model"
)

const jobColumns = `id, owner_id, company, role, status, created_at, updated_at`

// JobRepository persists jobs in a SQL database (MySQL or SQLite).
// Every statement that touches an existing row filters on both id and owner_id.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job. The caller assigns the ID and timestamps.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.OwnerID, job.Company, job.Role, job.Status, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

// ListByOwner returns all jobs owned by ownerID ordered by id.
func (r *JobRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE owner_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.OwnerID, &j.Company, &j.Role, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// GetByID retrieves a job by id, scoped to ownerID.
func (r *JobRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ? AND owner_id = ?`

	j := &model.Job{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&j.ID, &j.OwnerID, &j.Company, &j.Role, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

// UpdateStatus sets the status of a job owned by ownerID and returns the stored record.
func (r *JobRepository) UpdateStatus(ctx context.Context, ownerID, id string, status model.Status, at time.Time) (*model.Job, error) {
	query := `UPDATE jobs SET status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, at, id, ownerID); err != nil {
		return nil, err
	}

	// MySQL reports zero affected rows when nothing changed, so existence is
	// decided by reading the row back.
	return r.GetByID(ctx, ownerID, id)
}

// Delete removes a job owned by ownerID. It returns ErrJobNotFound when nothing matched.
func (r *JobRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM jobs WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
