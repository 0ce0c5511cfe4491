package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `
	id, company_id, code, name, status, start_date, end_date, created_at, updated_at`

// JobRepo implementación sobre PostgreSQL (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste una obra.
func (r *JobRepo) Create(job *entity.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CompanyID, job.Code, job.Name, job.Status,
		job.StartDate, job.EndDate, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByID obtiene una obra por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.getOne(query, id)
}

// GetByCompanyAndCode obtiene una obra por código dentro de la empresa.
func (r *JobRepo) GetByCompanyAndCode(companyID, code string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 AND code = $2`
	return r.getOne(query, companyID, code)
}

// Update actualiza los campos mutables de la obra (el código no cambia).
func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs
		SET name = $2, status = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		job.ID, job.Name, job.Status, job.StartDate, job.EndDate, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista obras de la empresa por código. Limit <= 0 lista sin tope.
func (r *JobRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 ORDER BY code ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, job)
	}
	return list, rows.Err()
}

// Delete elimina una obra.
func (r *JobRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) getOne(query string, args ...any) (*entity.Job, error) {
	job, err := scanJob(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Code, &j.Name, &j.Status,
		&j.StartDate, &j.EndDate, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
