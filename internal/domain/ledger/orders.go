package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// IncomingRow es el saldo abierto de una orden de compra contra sus
// recepciones. InferredQty deja rastro de auditoría: cuánto de CheckedIn se
// asignó por la heurística FIFO (recepción sin source_id) en vez de por
// enlace explícito, para corrección manual si dos órdenes abiertas del mismo
// par código+obra compiten por la misma recepción.
type IncomingRow struct {
	SourceID    string
	Code        string
	JobID       string // normalizado
	Ordered     decimal.Decimal
	CheckedIn   decimal.Decimal
	InferredQty decimal.Decimal
	OpenQty     decimal.Decimal // max(0, Ordered - CheckedIn)
	ETA         *time.Time
	Late        bool // ETA parseable y anterior a now
	LastOrderTS time.Time
}

// orderBalance acumulador interno de una orden; FirstReceiptTS alimenta el
// KPI de entregas a tiempo.
type orderBalance struct {
	row            IncomingRow
	firstReceiptTS *time.Time
}

func (ob *orderBalance) open() decimal.Decimal {
	return ob.row.Ordered.Sub(ob.row.CheckedIn)
}

// receive abona una recepción a la orden. El abono se tope en la capacidad
// abierta: una sobre-recepción (enlazada o no) nunca empuja CheckedIn por
// encima de Ordered, así el exceso de una orden no tapa el faltante de otra
// en el fill rate.
func (ob *orderBalance) receive(qty decimal.Decimal, ts time.Time, inferred bool) {
	credit := decimal.Min(qty, ob.open())
	if credit.IsPositive() {
		ob.row.CheckedIn = ob.row.CheckedIn.Add(credit)
		if inferred {
			ob.row.InferredQty = ob.row.InferredQty.Add(credit)
		}
	}
	if ob.firstReceiptTS == nil || ts.Before(*ob.firstReceiptTS) {
		t := ts
		ob.firstReceiptTS = &t
	}
}

// buildOrderBalances ejecuta las dos pasadas del cruce órdenes/recepciones:
//
// Pasada primaria: una orden por source_id (o por id del evento si no lo
// tiene); eventos ordered que comparten source_id acumulan (reórdenes
// parciales bajo una misma OC); se conserva la primera ETA no nula vista.
// Las recepciones (in, o return con source_id) con enlace explícito abonan a
// su orden.
//
// Pasada de respaldo (determinista): los in sin source_id se recorren por ts
// ascendente y se asignan greedy, FIFO por LastOrderTS, sobre las órdenes
// abiertas del mismo (código, obra normalizada) hasta agotar la cantidad o
// quedarse sin órdenes abiertas. Modela "no siempre se escanea el código de
// la OC al recibir".
func buildOrderBalances(events []*entity.MovementEvent, now time.Time) []*orderBalance {
	// Orden cronológico para que "primera ETA vista" y el FIFO de respaldo
	// no dependan del orden de llegada del slice.
	sorted := make([]*entity.MovementEvent, 0, len(events))
	for _, ev := range events {
		if ev != nil && ev.Code != "" && !ev.Qty.IsZero() {
			sorted = append(sorted, ev)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TS.Before(sorted[j].TS) })

	balances := make(map[string]*orderBalance)
	var sequence []*orderBalance
	var unlinked []*entity.MovementEvent

	for _, ev := range sorted {
		switch ev.Type {
		case entity.MovementTypeOrdered:
			key := ev.SourceID
			if key == "" {
				key = ev.ID
			}
			ob := balances[key]
			if ob == nil {
				ob = &orderBalance{row: IncomingRow{
					SourceID: key,
					Code:     ev.Code,
					JobID:    NormalizeJobID(ev.JobID),
				}}
				balances[key] = ob
				sequence = append(sequence, ob)
			}
			ob.row.Ordered = ob.row.Ordered.Add(ev.Qty)
			if ev.TS.After(ob.row.LastOrderTS) {
				ob.row.LastOrderTS = ev.TS
			}
			if ob.row.ETA == nil && ev.ETA != nil {
				eta := *ev.ETA
				ob.row.ETA = &eta
			}
		case entity.MovementTypeIn:
			if ev.SourceID == "" {
				unlinked = append(unlinked, ev)
				continue
			}
			if ob := balances[ev.SourceID]; ob != nil {
				ob.receive(ev.Qty, ev.TS, false)
			}
		case entity.MovementTypeReturn:
			// Una devolución solo cuenta como recepción de OC con enlace explícito.
			if ev.SourceID != "" {
				if ob := balances[ev.SourceID]; ob != nil {
					ob.receive(ev.Qty, ev.TS, false)
				}
			}
		}
	}

	// Pasada de respaldo: asignación FIFO de recepciones sin enlace.
	for _, ev := range unlinked {
		qtyLeft := ev.Qty
		candidates := openOrdersFor(sequence, ev.Code, NormalizeJobID(ev.JobID))
		for _, ob := range candidates {
			if !qtyLeft.IsPositive() {
				break
			}
			take := decimal.Min(qtyLeft, ob.open())
			if !take.IsPositive() {
				continue
			}
			ob.receive(take, ev.TS, true)
			qtyLeft = qtyLeft.Sub(take)
		}
	}

	for _, ob := range sequence {
		ob.row.OpenQty = clampZero(ob.open())
		ob.row.Late = ob.row.ETA != nil && ob.row.ETA.Before(now)
	}
	return sequence
}

// openOrdersFor órdenes abiertas del par (code, jobID), la más antigua primero.
func openOrdersFor(sequence []*orderBalance, code, jobID string) []*orderBalance {
	var open []*orderBalance
	for _, ob := range sequence {
		if ob.row.Code == code && ob.row.JobID == jobID && ob.open().IsPositive() {
			open = append(open, ob)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].row.LastOrderTS.Before(open[j].row.LastOrderTS)
	})
	return open
}

// BuildIncomingRows reconcilia eventos ordered contra recepciones y devuelve
// las órdenes aún abiertas (OpenQty > 0), las más urgentes primero: ETA
// ascendente; las filas sin ETA van al final ordenadas por fecha de orden.
func BuildIncomingRows(events []*entity.MovementEvent, now time.Time) []*IncomingRow {
	var rows []*IncomingRow
	for _, ob := range buildOrderBalances(events, now) {
		if ob.row.OpenQty.IsPositive() {
			row := ob.row
			rows = append(rows, &row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.ETA != nil && b.ETA != nil:
			if !a.ETA.Equal(*b.ETA) {
				return a.ETA.Before(*b.ETA)
			}
			return a.LastOrderTS.Before(b.LastOrderTS)
		case a.ETA != nil:
			return true
		case b.ETA != nil:
			return false
		default:
			return a.LastOrderTS.Before(b.LastOrderTS)
		}
	})
	return rows
}
