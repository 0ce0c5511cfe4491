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
	"github.com/jhoicas/FlotaStock-api/pkg/textutil"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `
	id, company_id, code, name, category, unit_price, min_stock,
	low_stock_alert, created_at, updated_at`

// ItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem. La columna name_search guarda el nombre plegado
// (minúsculas, sin acentos) para la búsqueda.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (` + itemColumns + `, name_search)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Code, item.Name, nullIfEmpty(item.Category),
		item.UnitPrice, item.MinStock, item.LowStockAlert,
		item.CreatedAt, item.UpdatedAt, textutil.Fold(item.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.getOne(query, id)
}

// GetByCompanyAndCode obtiene un ítem por código dentro de la empresa.
func (r *ItemRepo) GetByCompanyAndCode(companyID, code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND code = $2`
	return r.getOne(query, companyID, code)
}

// Update actualiza los campos mutables del ítem (el código no cambia).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, unit_price = $4, min_stock = $5,
		    low_stock_alert = $6, updated_at = $7, name_search = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.Category), item.UnitPrice,
		item.MinStock, item.LowStockAlert, item.UpdatedAt, textutil.Fold(item.Name),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista ítems de la empresa por código. Limit <= 0 lista sin tope.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 ORDER BY code ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return r.list(query, companyID)
}

// Search busca por código o nombre plegado; el término se pliega igual, así
// "Taladro Eléctrico" y "taladro electrico" encuentran lo mismo.
func (r *ItemRepo) Search(companyID, term string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE company_id = $1 AND (code ILIKE $2 OR name_search LIKE $3)
		ORDER BY code ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	pattern := "%" + term + "%"
	foldedPattern := "%" + textutil.Fold(term) + "%"
	return r.list(query, companyID, pattern, foldedPattern)
}

// Delete elimina un ítem del catálogo.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) getOne(query string, args ...any) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var category *string
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.Code, &it.Name, &category,
		&it.UnitPrice, &it.MinStock, &it.LowStockAlert,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Category = deref(category)
	return &it, nil
}
