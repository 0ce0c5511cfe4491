package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// SlowMover ítem con poca rotación en la ventana.
type SlowMover struct {
	Code      string
	Name      string
	Moves     int // eventos out en la ventana
	Available decimal.Decimal
}

// MetricsSnapshot KPIs operativos derivados del libro para una ventana móvil.
// Toda razón con denominador potencialmente cero es un puntero: nil significa
// "no disponible", nunca NaN ni un falso cero verificado.
type MetricsSnapshot struct {
	WindowDays int
	AsOf       time.Time

	Accuracy         *decimal.Decimal // 1 - Σ|conteo-sistema| / Σ|sistema|
	DiscrepancyValue decimal.Decimal  // Σ|conteo-sistema| × costo unitario
	AdjustmentRate   *decimal.Decimal // eventos consume / eventos totales en ventana

	InventoryValue decimal.Decimal  // Σ max(0, en-bodega) × costo unitario, al corte
	ValueTrend7d   *decimal.Decimal // cambio relativo vs. valor hace 7 días

	Turnover   *decimal.Decimal // COGS(ventana) / valor promedio de inventario
	DaysOnHand *decimal.Decimal // valor promedio / (COGS/días de ventana)

	FillRate   *decimal.Decimal // min(1, recibido/ordenado) de órdenes en ventana
	OnTimeRate *decimal.Decimal // fracción de órdenes con primera recepción ≤ ETA

	SlowMovers      []SlowMover      // ≤ 2 salidas en ventana
	Concentration80 *decimal.Decimal // fracción mínima de SKUs que acumula 80% del uso
}

var (
	one    = decimal.NewFromInt(1)
	pareto = decimal.NewFromFloat(0.80)
)

// ComputeMetrics calcula el tablero operativo. Función pura sobre
// (eventos, conteos, catálogo, now, días de ventana): sin estado oculto,
// directamente testeable con fixtures literales. windowDays <= 0 usa 30.
func ComputeMetrics(
	events []*entity.MovementEvent,
	counts []*entity.CountSnapshot,
	items []*entity.Item,
	now time.Time,
	windowDays int,
) *MetricsSnapshot {
	if windowDays <= 0 {
		windowDays = 30
	}
	windowStart := now.AddDate(0, 0, -windowDays)
	snap := NewSnapshot(now, items, nil)
	balances := AggregateStockMap(events, snap)

	m := &MetricsSnapshot{WindowDays: windowDays, AsOf: now}

	m.computeAccuracy(balances, counts, snap, windowStart, now)
	m.computeAdjustmentRate(events, windowStart, now)
	m.computeValueAndTrend(events, balances, snap, now)
	m.computeTurnover(events, snap, windowStart, now)
	m.computeOrderRates(events, windowStart, now)
	m.computeSlowMovers(events, balances, items, windowStart, now)
	m.computeConcentration(events, windowStart, now)

	return m
}

// computeAccuracy exactitud de inventario sobre ítems con conteo reciente.
// Los ítems sin conteo quedan fuera de ambas sumas.
func (m *MetricsSnapshot) computeAccuracy(
	balances map[string]*ItemBalance,
	counts []*entity.CountSnapshot,
	snap *Snapshot,
	windowStart, now time.Time,
) {
	// Último conteo por código dentro de la ventana.
	latest := make(map[string]*entity.CountSnapshot)
	for _, c := range counts {
		if c == nil || c.Code == "" || c.CountedAt.Before(windowStart) || c.CountedAt.After(now) {
			continue
		}
		if prev, ok := latest[c.Code]; !ok || c.CountedAt.After(prev.CountedAt) {
			latest[c.Code] = c
		}
	}

	errSum, baseSum, discrepancy := decimal.Zero, decimal.Zero, decimal.Zero
	for code, c := range latest {
		system := decimal.Zero
		if bal := balances[code]; bal != nil {
			system = bal.Available
		}
		diff := c.CountedQty.Sub(system).Abs()
		errSum = errSum.Add(diff)
		baseSum = baseSum.Add(system.Abs())
		discrepancy = discrepancy.Add(diff.Mul(snap.UnitPrice(code)))
	}

	m.DiscrepancyValue = discrepancy
	if len(latest) == 0 || baseSum.IsZero() {
		return // sin medición: Accuracy queda nil, no 1 ni NaN
	}
	acc := one.Sub(errSum.Div(baseSum))
	m.Accuracy = &acc
}

// computeAdjustmentRate proporción de bajas (consume) sobre el total de
// movimientos de la ventana.
func (m *MetricsSnapshot) computeAdjustmentRate(events []*entity.MovementEvent, windowStart, now time.Time) {
	total, consumed := 0, 0
	for _, ev := range events {
		if ev == nil || !inWindow(ev.TS, windowStart, now) {
			continue
		}
		total++
		if ev.Type == entity.MovementTypeConsume {
			consumed++
		}
	}
	if total == 0 {
		return
	}
	rate := decimal.NewFromInt(int64(consumed)).Div(decimal.NewFromInt(int64(total)))
	m.AdjustmentRate = &rate
}

// computeValueAndTrend valor actual del inventario y tendencia a 7 días.
// El valor de hace 7 días se reconstruye restando al valor actual el delta
// neto en dólares de los últimos 7 días (in/return suman, out/consume restan).
func (m *MetricsSnapshot) computeValueAndTrend(
	events []*entity.MovementEvent,
	balances map[string]*ItemBalance,
	snap *Snapshot,
	now time.Time,
) {
	value := decimal.Zero
	for code, bal := range balances {
		value = value.Add(clampZero(bal.OnHand).Mul(snap.UnitPrice(code)))
	}
	m.InventoryValue = value

	weekAgo := now.AddDate(0, 0, -7)
	prior := value.Sub(netDollarDelta(events, snap, weekAgo, now))
	if !prior.IsPositive() {
		return
	}
	trend := value.Sub(prior).Div(prior)
	m.ValueTrend7d = &trend
}

// computeTurnover rotación y días de inventario sobre la ventana.
// El valor al inicio de la ventana usa la misma reconstrucción por delta que
// la tendencia, para que ambas métricas nunca discrepen sobre la historia.
func (m *MetricsSnapshot) computeTurnover(
	events []*entity.MovementEvent,
	snap *Snapshot,
	windowStart, now time.Time,
) {
	cogs := decimal.Zero
	for _, ev := range events {
		if ev == nil || !inWindow(ev.TS, windowStart, now) {
			continue
		}
		if ev.Type == entity.MovementTypeOut || ev.Type == entity.MovementTypeConsume {
			cogs = cogs.Add(ev.Qty.Mul(snap.UnitPrice(ev.Code)))
		}
	}

	startValue := m.InventoryValue.Sub(netDollarDelta(events, snap, windowStart, now))
	avg := m.InventoryValue.Add(startValue).Div(decimal.NewFromInt(2))

	if avg.IsPositive() {
		turnover := cogs.Div(avg)
		m.Turnover = &turnover
	}
	if cogs.IsPositive() {
		days := avg.Mul(decimal.NewFromInt(int64(m.WindowDays))).Div(cogs)
		m.DaysOnHand = &days
	}
}

// computeOrderRates fill rate y entregas a tiempo de órdenes colocadas en la
// ventana, usando el mismo cruce órdenes/recepciones de BuildIncomingRows.
func (m *MetricsSnapshot) computeOrderRates(events []*entity.MovementEvent, windowStart, now time.Time) {
	ordered, received := decimal.Zero, decimal.Zero
	withETA, onTime := 0, 0

	for _, ob := range buildOrderBalances(events, now) {
		if !inWindow(ob.row.LastOrderTS, windowStart, now) {
			continue
		}
		ordered = ordered.Add(ob.row.Ordered)
		received = received.Add(ob.row.CheckedIn)

		if ob.row.ETA != nil && ob.firstReceiptTS != nil {
			withETA++
			if !ob.firstReceiptTS.After(*ob.row.ETA) {
				onTime++
			}
		}
	}

	if ordered.IsPositive() {
		fill := decimal.Min(one, received.Div(ordered))
		m.FillRate = &fill
	}
	if withETA > 0 {
		rate := decimal.NewFromInt(int64(onTime)).Div(decimal.NewFromInt(int64(withETA)))
		m.OnTimeRate = &rate
	}
}

// computeSlowMovers ítems del catálogo con ≤ 2 salidas en la ventana,
// ordenados por número de movimientos y luego por disponible ascendente.
func (m *MetricsSnapshot) computeSlowMovers(
	events []*entity.MovementEvent,
	balances map[string]*ItemBalance,
	items []*entity.Item,
	windowStart, now time.Time,
) {
	moves := outMovesByCode(events, windowStart, now)

	var slow []SlowMover
	for _, it := range items {
		if it == nil || it.Code == "" {
			continue
		}
		n := moves[it.Code]
		if n > 2 {
			continue
		}
		available := decimal.Zero
		if bal := balances[it.Code]; bal != nil {
			available = bal.Available
		}
		slow = append(slow, SlowMover{Code: it.Code, Name: it.Name, Moves: n, Available: available})
	}
	sort.SliceStable(slow, func(i, j int) bool {
		if slow[i].Moves != slow[j].Moves {
			return slow[i].Moves < slow[j].Moves
		}
		if !slow[i].Available.Equal(slow[j].Available) {
			return slow[i].Available.LessThan(slow[j].Available)
		}
		return slow[i].Code < slow[j].Code
	})
	m.SlowMovers = slow
}

// computeConcentration fracción mínima de SKUs (por uso descendente) cuyo
// uso acumulado alcanza el 80% de las salidas de la ventana (regla 80/20).
func (m *MetricsSnapshot) computeConcentration(events []*entity.MovementEvent, windowStart, now time.Time) {
	usage := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, ev := range events {
		if ev == nil || ev.Code == "" || ev.Type != entity.MovementTypeOut || !inWindow(ev.TS, windowStart, now) {
			continue
		}
		usage[ev.Code] = usage[ev.Code].Add(ev.Qty)
		total = total.Add(ev.Qty)
	}
	if !total.IsPositive() {
		return
	}

	type skuUsage struct {
		code string
		qty  decimal.Decimal
	}
	ranked := make([]skuUsage, 0, len(usage))
	for code, qty := range usage {
		if qty.IsPositive() {
			ranked = append(ranked, skuUsage{code, qty})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].qty.Equal(ranked[j].qty) {
			return ranked[i].qty.GreaterThan(ranked[j].qty)
		}
		return ranked[i].code < ranked[j].code
	})

	target := total.Mul(pareto)
	cum := decimal.Zero
	needed := 0
	for _, s := range ranked {
		cum = cum.Add(s.qty)
		needed++
		if cum.GreaterThanOrEqual(target) {
			break
		}
	}
	frac := decimal.NewFromInt(int64(needed)).Div(decimal.NewFromInt(int64(len(ranked))))
	m.Concentration80 = &frac
}

// netDollarDelta delta neto en dólares de los movimientos desde "from":
// entradas y devoluciones suman, salidas y consumos restan.
func netDollarDelta(events []*entity.MovementEvent, snap *Snapshot, from, to time.Time) decimal.Decimal {
	delta := decimal.Zero
	for _, ev := range events {
		if ev == nil || ev.Code == "" || !inWindow(ev.TS, from, to) {
			continue
		}
		dollars := ev.Qty.Mul(snap.UnitPrice(ev.Code))
		switch ev.Type {
		case entity.MovementTypeIn, entity.MovementTypeReturn:
			delta = delta.Add(dollars)
		case entity.MovementTypeOut, entity.MovementTypeConsume:
			delta = delta.Sub(dollars)
		}
	}
	return delta
}

// outMovesByCode número de salidas por código dentro de la ventana.
func outMovesByCode(events []*entity.MovementEvent, from, to time.Time) map[string]int {
	moves := make(map[string]int)
	for _, ev := range events {
		if ev == nil || ev.Code == "" || ev.Type != entity.MovementTypeOut {
			continue
		}
		if inWindow(ev.TS, from, to) {
			moves[ev.Code]++
		}
	}
	return moves
}

func inWindow(ts, from, to time.Time) bool {
	return !ts.Before(from) && !ts.After(to)
}
