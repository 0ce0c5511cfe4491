package ledger_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures compartidos: constructores literales de eventos para los tests del
// motor de reconciliación. "now" es un corte fijo para que los tests no
// dependan del reloj.
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func qty(n float64) decimal.Decimal { return decimal.NewFromFloat(n) }

func daysAgo(n int) time.Time   { return now.AddDate(0, 0, -n) }
func daysAhead(n int) time.Time { return now.AddDate(0, 0, n) }

func tp(t time.Time) *time.Time { return &t }

// ev construye un evento con los campos mínimos; los tests ajustan el resto.
func ev(typ, code string, n float64, ts time.Time) *entity.MovementEvent {
	return &entity.MovementEvent{
		ID:        typ + "-" + code + "-" + ts.Format(time.RFC3339),
		CompanyID: "co-1",
		Code:      code,
		Type:      typ,
		Qty:       qty(n),
		TS:        ts,
	}
}

func evJob(typ, code, jobID string, n float64, ts time.Time) *entity.MovementEvent {
	e := ev(typ, code, n, ts)
	e.JobID = jobID
	return e
}

func item(code, name string, price float64) *entity.Item {
	return &entity.Item{
		ID:        "item-" + code,
		CompanyID: "co-1",
		Code:      code,
		Name:      name,
		UnitPrice: qty(price),
	}
}
