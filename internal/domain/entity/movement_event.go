package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario (append-only).
const (
	MovementTypeIn             = "in"              // entrada / recepción
	MovementTypeOut            = "out"             // salida / préstamo a obra
	MovementTypeReserve        = "reserve"         // reserva para una obra
	MovementTypeReserveRelease = "reserve_release" // liberación de reserva
	MovementTypeReturn         = "return"          // devolución de una salida
	MovementTypeConsume        = "consume"         // consumo / baja (daño, pérdida)
	MovementTypeOrdered        = "ordered"         // orden de compra levantada
)

// movementTypes conjunto de tipos válidos.
var movementTypes = map[string]struct{}{
	MovementTypeIn:             {},
	MovementTypeOut:            {},
	MovementTypeReserve:        {},
	MovementTypeReserveRelease: {},
	MovementTypeReturn:         {},
	MovementTypeConsume:        {},
	MovementTypeOrdered:        {},
}

// ValidMovementType indica si el tipo es uno de los siete tipos del libro.
func ValidMovementType(t string) bool {
	_, ok := movementTypes[t]
	return ok
}

// MovementEvent representa un evento inmutable del libro de inventario.
// Los eventos nunca se editan ni reordenan después de creados: todo estado
// derivado (disponible, reservado, prestado, vencido) se recalcula plegando
// el conjunto de eventos al momento de la consulta. Los saldos jamás se
// persisten como contadores mutables.
type MovementEvent struct {
	ID         string
	CompanyID  string
	Code       string          // código del ítem (catálogo)
	Type       string          // ver constantes MovementType*
	Qty        decimal.Decimal // siempre positiva; el tipo define el signo
	JobID      string          // normalizado en ingesta; "" = sin obra asignada
	TS         time.Time       // momento del movimiento (define orden y ventanas)
	ReturnDate *time.Time      // fecha comprometida de devolución (salidas)
	ETA        *time.Time      // fecha estimada de llegada (órdenes)
	SourceID   string          // enlace opcional de una recepción a su orden
	Status     string          // clasificación descriptiva (ok, damaged, lost...)
	Reason     string
	Location   string
	Notes      string
	UserEmail  string
	CreatedAt  time.Time
}
