package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nextelligentia/leadops/internal/domain"
)

const jobColumns = `id, title, department, location, employment_type, description,
	requirements, status, created_at, updated_at`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `
		INSERT INTO jobs (
			title, department, location, employment_type, description, requirements, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + jobColumns

	row := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Department,
		job.Location,
		job.EmploymentType,
		job.Description,
		job.Requirements,
		job.Status,
	)

	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return created, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	return scanJob(r.pool.QueryRow(ctx, query, id))
}

func (r *JobRepository) List(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM   jobs
		WHERE  $1 = '' OR status = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET    status = $2, updated_at = NOW()
		WHERE  id = $1
		RETURNING ` + jobColumns

	return scanJob(r.pool.QueryRow(ctx, query, id, status))
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Count(ctx context.Context, status domain.JobStatus) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE $1 = '' OR status = $1`, string(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Department, &j.Location, &j.EmploymentType, &j.Description,
		&j.Requirements, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
