package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobUsageDTO uso vigente de un ítem en una obra abierta.
type JobUsageDTO struct {
	JobID    string          `json:"job_id"`
	Out      decimal.Decimal `json:"out"`
	Reserved decimal.Decimal `json:"reserved"`
}

// StockRowDTO saldo derivado de un ítem: el libro plegado al momento de la
// consulta, enriquecido con el catálogo.
type StockRowDTO struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Available    decimal.Decimal `json:"available"`
	CheckedOut   decimal.Decimal `json:"checked_out"`
	Reserved     decimal.Decimal `json:"reserved"`
	OnHand       decimal.Decimal `json:"on_hand"`
	LowStock     bool            `json:"low_stock"`
	LastMoveTS   *time.Time      `json:"last_move_ts,omitempty"`
	LastLocation string          `json:"last_location,omitempty"`
	Jobs         []JobUsageDTO   `json:"jobs,omitempty"`
}

// StockListResponse vista de stock completa de una empresa.
type StockListResponse struct {
	Items []StockRowDTO `json:"items"`
	AsOf  time.Time     `json:"as_of"`
}

// OverdueRowDTO préstamo vencido: saldo sin devolver con fecha comprometida
// en el pasado.
type OverdueRowDTO struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	JobID       string          `json:"job_id,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	DueDate     time.Time       `json:"due_date"`
	DaysLate    int             `json:"days_late"`
	LastOutTS   time.Time       `json:"last_out_ts"`
}

// OverdueListResponse préstamos vencidos, ordenados del más atrasado al menos.
type OverdueListResponse struct {
	Items []OverdueRowDTO `json:"items"`
	AsOf  time.Time       `json:"as_of"`
}

// IncomingRowDTO orden de compra con saldo pendiente de recibir.
type IncomingRowDTO struct {
	SourceID    string          `json:"source_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	JobID       string          `json:"job_id,omitempty"`
	Ordered     decimal.Decimal `json:"ordered"`
	CheckedIn   decimal.Decimal `json:"checked_in"`
	InferredQty decimal.Decimal `json:"inferred_qty"`
	OpenQty     decimal.Decimal `json:"open_qty"`
	ETA         *time.Time      `json:"eta,omitempty"`
	Late        bool            `json:"late"`
}

// IncomingListResponse órdenes abiertas por urgencia (ETA más próxima primero).
type IncomingListResponse struct {
	Items []IncomingRowDTO `json:"items"`
	AsOf  time.Time        `json:"as_of"`
}
