package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// OverdueRow es un grupo (ítem, obra) con stock sin devolver ya vencido.
type OverdueRow struct {
	Code        string
	JobID       string // normalizado; "" = sin obra
	Outstanding decimal.Decimal
	MinDue      time.Time
	DaysLate    int
	LastOutTS   time.Time
}

// grupo acumulador por (code, jobID).
type overdueGroup struct {
	code, jobID string
	outQty      decimal.Decimal
	retQty      decimal.Decimal
	minDue      *time.Time
	lastOutTS   time.Time
}

// BuildOverdueRows agrupa eventos out/return por (código, obra normalizada) y
// devuelve los grupos vencidos: pendiente > 0 y fecha comprometida más
// temprana ya pasada. Gobierna la fecha MÁS temprana: el grupo está tarde en
// cuanto vence su primera obligación, no la última. Orden: días de atraso
// descendente (prioridad de tablero).
func BuildOverdueRows(events []*entity.MovementEvent, now time.Time) []*OverdueRow {
	groups := make(map[[2]string]*overdueGroup)

	for _, ev := range events {
		if ev == nil || ev.Code == "" || ev.Qty.IsZero() {
			continue
		}
		if ev.Type != entity.MovementTypeOut && ev.Type != entity.MovementTypeReturn {
			continue
		}
		jobID := NormalizeJobID(ev.JobID)
		key := [2]string{ev.Code, jobID}
		g := groups[key]
		if g == nil {
			g = &overdueGroup{code: ev.Code, jobID: jobID}
			groups[key] = g
		}
		switch ev.Type {
		case entity.MovementTypeOut:
			g.outQty = g.outQty.Add(ev.Qty)
			if ev.TS.After(g.lastOutTS) {
				g.lastOutTS = ev.TS
			}
			if ev.ReturnDate != nil && (g.minDue == nil || ev.ReturnDate.Before(*g.minDue)) {
				due := *ev.ReturnDate
				g.minDue = &due
			}
		case entity.MovementTypeReturn:
			g.retQty = g.retQty.Add(ev.Qty)
		}
	}

	rows := make([]*OverdueRow, 0, len(groups))
	for _, g := range groups {
		outstanding := clampZero(g.outQty.Sub(g.retQty))
		if !outstanding.IsPositive() || g.minDue == nil || !g.minDue.Before(now) {
			continue
		}
		rows = append(rows, &OverdueRow{
			Code:        g.code,
			JobID:       g.jobID,
			Outstanding: outstanding,
			MinDue:      *g.minDue,
			DaysLate:    daysLate(now, *g.minDue),
			LastOutTS:   g.lastOutTS,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DaysLate != rows[j].DaysLate {
			return rows[i].DaysLate > rows[j].DaysLate
		}
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].JobID < rows[j].JobID
	})
	return rows
}

// OutstandingFor calcula el pendiente por devolver (sin clamp) del par
// (código, obra). Lo usa la frontera de escritura para rechazar devoluciones
// que excedan lo prestado antes de insertar el evento.
func OutstandingFor(events []*entity.MovementEvent, code, jobID string) decimal.Decimal {
	jobID = NormalizeJobID(jobID)
	outstanding := decimal.Zero
	for _, ev := range events {
		if ev == nil || ev.Code != code || NormalizeJobID(ev.JobID) != jobID {
			continue
		}
		switch ev.Type {
		case entity.MovementTypeOut:
			outstanding = outstanding.Add(ev.Qty)
		case entity.MovementTypeReturn:
			outstanding = outstanding.Sub(ev.Qty)
		}
	}
	return outstanding
}

// ReservedFor calcula la reserva neta vigente del par (código, obra).
func ReservedFor(events []*entity.MovementEvent, code, jobID string) decimal.Decimal {
	jobID = NormalizeJobID(jobID)
	reserved := decimal.Zero
	for _, ev := range events {
		if ev == nil || ev.Code != code || NormalizeJobID(ev.JobID) != jobID {
			continue
		}
		switch ev.Type {
		case entity.MovementTypeReserve:
			reserved = reserved.Add(ev.Qty)
		case entity.MovementTypeReserveRelease:
			reserved = reserved.Sub(ev.Qty)
		}
	}
	return reserved
}

// daysLate días completos transcurridos desde la fecha comprometida.
func daysLate(now, due time.Time) int {
	if !due.Before(now) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}
