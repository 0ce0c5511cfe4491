package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// JobUsage saldo de salidas y reservas de un ítem en una obra activa.
type JobUsage struct {
	Out      decimal.Decimal
	Reserved decimal.Decimal
}

// ItemBalance es el saldo derivado de un ítem tras plegar sus eventos.
//
// Convención de signos del plegado:
//   - in y return suman al total de entradas (InQty)
//   - out resta (prestado); return además suma a ReturnQty
//   - reserve suma a ReserveQty, reserve_release resta
//   - consume resta del en-bodega sin afectar lo prestado; las bajas por
//     daño/pérdida no tienen expectativa de devolución (política de negocio,
//     no un descuido: ver Outstanding)
//   - ordered no toca saldos; solo alimenta el cruce de órdenes
type ItemBalance struct {
	Code       string
	InQty      decimal.Decimal // entradas: in + return
	OutQty     decimal.Decimal
	ReturnQty  decimal.Decimal
	ReserveQty decimal.Decimal // neto reserve - reserve_release (puede ser negativo)
	ConsumeQty decimal.Decimal

	Available  decimal.Decimal // max(0, InQty - OutQty - ConsumeQty - max(0, ReserveQty))
	CheckedOut decimal.Decimal // max(0, OutQty - ReturnQty)
	OnHand     decimal.Decimal // InQty - OutQty - ConsumeQty, sin clamp

	// Outstanding es OutQty - ReturnQty SIN clamp: lo usa la validación de
	// devoluciones para detectar intentos de devolver de más.
	Outstanding decimal.Decimal

	LastMoveTS   time.Time
	LastLocation string
	LowStock     bool

	// Jobs obras activas (no cerradas) con out > 0 o reserva > 0.
	Jobs map[string]JobUsage

	lastLocTS time.Time
}

// AggregateStock pliega la lista de eventos (en cualquier orden) a un saldo
// por código de ítem, ordenado por código. Eventos sin código o con cantidad
// cero no aportan nada; la función nunca falla.
func AggregateStock(events []*entity.MovementEvent, snap *Snapshot) []*ItemBalance {
	if snap == nil {
		snap = NewSnapshot(time.Now(), nil, nil)
	}
	byCode := make(map[string]*ItemBalance)

	for _, ev := range events {
		if ev == nil || ev.Code == "" || ev.Qty.IsZero() {
			continue
		}
		bal := byCode[ev.Code]
		if bal == nil {
			bal = &ItemBalance{Code: ev.Code, Jobs: make(map[string]JobUsage)}
			byCode[ev.Code] = bal
		}

		jobID := NormalizeJobID(ev.JobID)

		switch ev.Type {
		case entity.MovementTypeIn:
			bal.InQty = bal.InQty.Add(ev.Qty)
		case entity.MovementTypeReturn:
			bal.InQty = bal.InQty.Add(ev.Qty)
			bal.ReturnQty = bal.ReturnQty.Add(ev.Qty)
		case entity.MovementTypeOut:
			bal.OutQty = bal.OutQty.Add(ev.Qty)
			bal.addJobUsage(snap, jobID, ev.Qty, decimal.Zero)
		case entity.MovementTypeReserve:
			bal.ReserveQty = bal.ReserveQty.Add(ev.Qty)
			bal.addJobUsage(snap, jobID, decimal.Zero, ev.Qty)
		case entity.MovementTypeReserveRelease:
			bal.ReserveQty = bal.ReserveQty.Sub(ev.Qty)
			bal.addJobUsage(snap, jobID, decimal.Zero, ev.Qty.Neg())
		case entity.MovementTypeConsume:
			bal.ConsumeQty = bal.ConsumeQty.Add(ev.Qty)
		case entity.MovementTypeOrdered:
			// no afecta saldos; ver orders.go
		default:
			continue
		}

		if ev.TS.After(bal.LastMoveTS) {
			bal.LastMoveTS = ev.TS
		}
		// Última ubicación: gana el mayor ts entre eventos con ubicación;
		// empates los resuelve el último escrito con ese ts.
		if ev.Location != "" && !ev.TS.Before(bal.lastLocTS) {
			bal.lastLocTS = ev.TS
			bal.LastLocation = ev.Location
		}
	}

	out := make([]*ItemBalance, 0, len(byCode))
	for _, bal := range byCode {
		bal.finalize(snap)
		out = append(out, bal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// AggregateStockMap variante indexada por código, para validaciones puntuales.
func AggregateStockMap(events []*entity.MovementEvent, snap *Snapshot) map[string]*ItemBalance {
	byCode := make(map[string]*ItemBalance)
	for _, bal := range AggregateStock(events, snap) {
		byCode[bal.Code] = bal
	}
	return byCode
}

// addJobUsage acumula uso por obra; las obras cerradas se excluyen de la
// agregación activa y el pool sin obra ("") no se rastrea por obra.
func (b *ItemBalance) addJobUsage(snap *Snapshot, jobID string, out, reserved decimal.Decimal) {
	if jobID == "" || snap.JobClosed(jobID) {
		return
	}
	usage := b.Jobs[jobID]
	usage.Out = usage.Out.Add(out)
	usage.Reserved = usage.Reserved.Add(reserved)
	b.Jobs[jobID] = usage
}

// finalize calcula los campos derivados y poda obras sin uso activo.
func (b *ItemBalance) finalize(snap *Snapshot) {
	reserveForMath := b.ReserveQty
	if reserveForMath.IsNegative() {
		// Más liberaciones que reservas: una liberación huérfana nunca debe
		// inflar el disponible.
		reserveForMath = decimal.Zero
	}

	b.OnHand = b.InQty.Sub(b.OutQty).Sub(b.ConsumeQty)
	b.Available = clampZero(b.OnHand.Sub(reserveForMath))
	b.Outstanding = b.OutQty.Sub(b.ReturnQty)
	b.CheckedOut = clampZero(b.Outstanding)

	for jobID, usage := range b.Jobs {
		if !usage.Out.IsPositive() && !usage.Reserved.IsPositive() {
			delete(b.Jobs, jobID)
		}
	}

	if it := snap.Item(b.Code); it != nil && it.LowStockAlert {
		b.LowStock = b.Available.LessThan(it.MinStock)
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
