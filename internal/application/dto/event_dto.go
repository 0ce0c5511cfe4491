package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/ledger/movements.
// Las fechas llegan como texto flexible (epoch en milisegundos, RFC3339 o
// fecha simple); el use case las interpreta y descarta las ilegibles.
type RegisterMovementRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=100"`
	Type       string          `json:"type" validate:"required"`
	Qty        decimal.Decimal `json:"qty"`
	JobID      string          `json:"job_id,omitempty"`
	TS         string          `json:"ts,omitempty"`
	ReturnDate string          `json:"return_date,omitempty"`
	ETA        string          `json:"eta,omitempty"`
	SourceID   string          `json:"source_id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Location   string          `json:"location,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// ListMovementsRequest filtros de consulta para GET /api/ledger/movements.
type ListMovementsRequest struct {
	Code   string `query:"code"`
	JobID  string `query:"job_id"`
	Type   string `query:"type"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// BulkClearRequest body para el barrido administrativo por tipo.
type BulkClearRequest struct {
	Type string `json:"type" validate:"required"`
}

// BulkClearResponse número de eventos eliminados.
type BulkClearResponse struct {
	Type    string `json:"type"`
	Deleted int64  `json:"deleted"`
}

// MovementEventResponse salida de un evento del libro.
type MovementEventResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Qty        decimal.Decimal `json:"qty"`
	JobID      string          `json:"job_id,omitempty"`
	TS         time.Time       `json:"ts"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	ETA        *time.Time      `json:"eta,omitempty"`
	SourceID   string          `json:"source_id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Location   string          `json:"location,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	UserEmail  string          `json:"user_email,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de eventos.
type MovementListResponse struct {
	Items []MovementEventResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
