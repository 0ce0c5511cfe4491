package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem del catálogo de inventario/flota.
// Es un registro de referencia mutable: un evento puede apuntar a un ítem ya
// eliminado y la reconciliación lo tolera (etiqueta "Desconocido").
type Item struct {
	ID            string
	CompanyID     string
	Code          string // único por empresa
	Name          string
	Category      string
	UnitPrice     decimal.Decimal // costo unitario para valoración y KPIs
	MinStock      decimal.Decimal // punto de reorden
	LowStockAlert bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
