package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

var _ repository.CountSnapshotRepository = (*CountSnapshotRepo)(nil)

const countColumns = `
	id, company_id, code, counted_qty, counted_at, user_email, created_at`

// CountSnapshotRepo implementación sobre PostgreSQL (usable con pool o tx).
type CountSnapshotRepo struct {
	q Querier
}

// NewCountSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountSnapshotRepository(q Querier) *CountSnapshotRepo {
	return &CountSnapshotRepo{q: q}
}

// Create persiste un conteo físico.
func (r *CountSnapshotRepo) Create(count *entity.CountSnapshot) error {
	if count.ID == "" {
		count.ID = uuid.New().String()
	}
	query := `
		INSERT INTO count_snapshots (` + countColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.CompanyID, count.Code, count.CountedQty,
		count.CountedAt, nullIfEmpty(count.UserEmail), count.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create count snapshot: %w", err)
	}
	return nil
}

// ListByCompany lista conteos de la empresa en un rango de fechas, del más
// reciente al más antiguo. Limit <= 0 lista sin tope.
func (r *CountSnapshotRepo) ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.CountSnapshot, error) {
	query := `SELECT ` + countColumns + ` FROM count_snapshots WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND counted_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND counted_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY counted_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return r.list(query, args...)
}

// ListByCode lista los conteos de un ítem, del más reciente al más antiguo.
func (r *CountSnapshotRepo) ListByCode(companyID, code string, limit, offset int) ([]*entity.CountSnapshot, error) {
	query := `
		SELECT ` + countColumns + `
		FROM count_snapshots
		WHERE company_id = $1 AND code = $2
		ORDER BY counted_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return r.list(query, companyID, code)
}

func (r *CountSnapshotRepo) list(query string, args ...any) ([]*entity.CountSnapshot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list count snapshots: %w", err)
	}
	defer rows.Close()

	var list []*entity.CountSnapshot
	for rows.Next() {
		var c entity.CountSnapshot
		var userEmail *string
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Code, &c.CountedQty,
			&c.CountedAt, &userEmail, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan count snapshot: %w", err)
		}
		c.UserEmail = deref(userEmail)
		list = append(list, &c)
	}
	return list, rows.Err()
}
