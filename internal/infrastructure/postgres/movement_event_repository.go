package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

var _ repository.MovementEventRepository = (*MovementEventRepo)(nil)

const movementEventColumns = `
	id, company_id, code, type, qty, job_id, ts, return_date, eta,
	source_id, status, reason, location, notes, user_email, created_at`

// MovementEventRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementEventRepo struct {
	q Querier
}

// NewMovementEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementEventRepository(q Querier) *MovementEventRepo {
	return &MovementEventRepo{q: q}
}

// Create persiste un evento del libro.
func (r *MovementEventRepo) Create(event *entity.MovementEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_events (` + movementEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.CompanyID, event.Code, event.Type, event.Qty,
		nullIfEmpty(event.JobID), event.TS, event.ReturnDate, event.ETA,
		nullIfEmpty(event.SourceID), nullIfEmpty(event.Status), nullIfEmpty(event.Reason),
		nullIfEmpty(event.Location), nullIfEmpty(event.Notes), nullIfEmpty(event.UserEmail),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID.
func (r *MovementEventRepo) GetByID(id string) (*entity.MovementEvent, error) {
	query := `SELECT ` + movementEventColumns + ` FROM movement_events WHERE id = $1`
	ev, err := scanMovementEvent(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement event: %w", err)
	}
	return ev, nil
}

// ListByCompany lista eventos de la empresa según el filtro, ordenados por ts
// ascendente (el orden natural del libro). Limit <= 0 lista sin tope.
func (r *MovementEventRepo) ListByCompany(companyID string, filter repository.EventFilter) ([]*entity.MovementEvent, error) {
	query := `SELECT ` + movementEventColumns + ` FROM movement_events WHERE company_id = $1`
	query, args := applyEventFilter(query, []any{companyID}, filter)
	query += " ORDER BY ts ASC, created_at ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement events: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementEvent
	for rows.Next() {
		ev, err := scanMovementEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// ListByCode lista el historial completo de un ítem, por ts ascendente.
func (r *MovementEventRepo) ListByCode(companyID, code string) ([]*entity.MovementEvent, error) {
	return r.ListByCompany(companyID, repository.EventFilter{Code: code})
}

// CountByCompany cuenta los eventos que cumplen el filtro (ignora Limit/Offset).
func (r *MovementEventRepo) CountByCompany(companyID string, filter repository.EventFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM movement_events WHERE company_id = $1`
	query, args := applyEventFilter(query, []any{companyID}, filter)

	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movement events: %w", err)
	}
	return total, nil
}

// DeleteByType elimina todos los eventos de un tipo para la empresa (barrido
// administrativo). Devuelve cuántas filas se eliminaron.
func (r *MovementEventRepo) DeleteByType(companyID, movementType string) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM movement_events WHERE company_id = $1 AND type = $2`,
		companyID, movementType,
	)
	if err != nil {
		return 0, fmt.Errorf("delete movement events by type: %w", err)
	}
	return tag.RowsAffected(), nil
}

// applyEventFilter agrega las condiciones del filtro al query base.
func applyEventFilter(query string, args []any, filter repository.EventFilter) (string, []any) {
	pos := len(args) + 1
	if filter.Code != "" {
		query += fmt.Sprintf(" AND code = $%d", pos)
		args = append(args, filter.Code)
		pos++
	}
	if filter.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", pos)
		args = append(args, filter.JobID)
		pos++
	}
	if len(filter.Types) > 0 {
		query += fmt.Sprintf(" AND type = ANY($%d)", pos)
		args = append(args, filter.Types)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	return query, args
}

// scanMovementEvent lee una fila con las columnas de movementEventColumns.
func scanMovementEvent(row pgx.Row) (*entity.MovementEvent, error) {
	var ev entity.MovementEvent
	var jobID, sourceID, status, reason, location, notes, userEmail *string
	err := row.Scan(
		&ev.ID, &ev.CompanyID, &ev.Code, &ev.Type, &ev.Qty,
		&jobID, &ev.TS, &ev.ReturnDate, &ev.ETA,
		&sourceID, &status, &reason, &location, &notes, &userEmail,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ev.JobID = deref(jobID)
	ev.SourceID = deref(sourceID)
	ev.Status = deref(status)
	ev.Reason = deref(reason)
	ev.Location = deref(location)
	ev.Notes = deref(notes)
	ev.UserEmail = deref(userEmail)
	return &ev, nil
}
