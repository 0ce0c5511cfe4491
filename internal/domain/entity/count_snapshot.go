package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountSnapshot representa un conteo físico puntual de un ítem.
// Se compara contra el disponible derivado del libro para medir exactitud
// de inventario y valor de discrepancia (KPIs del tablero operativo).
type CountSnapshot struct {
	ID         string
	CompanyID  string
	Code       string
	CountedQty decimal.Decimal
	CountedAt  time.Time
	UserEmail  string
	CreatedAt  time.Time
}
