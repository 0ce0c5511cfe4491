package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCountRequest entrada para registrar un conteo físico.
// CountedAt acepta texto flexible; vacío usa el momento del registro.
type CreateCountRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=100"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	CountedAt  string          `json:"counted_at,omitempty"`
}

// CountResponse salida de un conteo físico.
type CountResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Code       string          `json:"code"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	CountedAt  time.Time       `json:"counted_at"`
	UserEmail  string          `json:"user_email,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CountListResponse lista paginada de conteos.
type CountListResponse struct {
	Items []CountResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
