package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem del catálogo.
type CreateItemRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	LowStockAlert bool            `json:"low_stock_alert"`
}

// UpdateItemRequest entrada para actualizar un ítem (campos opcionales).
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	LowStockAlert *bool            `json:"low_stock_alert"`
}

// ItemResponse salida de un ítem del catálogo.
type ItemResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	LowStockAlert bool            `json:"low_stock_alert"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
