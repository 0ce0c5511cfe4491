package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
)

func aggregate(t *testing.T, events []*entity.MovementEvent) map[string]*ledger.ItemBalance {
	t.Helper()
	return ledger.AggregateStockMap(events, ledger.NewSnapshot(now, nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Plegado básico: convención de signos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: in(A,10), out(A,3) → disponible 7, prestado 3.
func TestAggregateStock_EntradaMenosSalida(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(5)),
		ev(entity.MovementTypeOut, "A", 3, daysAgo(2)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(7)), "disponible = 10 - 3 = 7, got %s", bal.Available)
	assert.True(t, bal.CheckedOut.Equal(qty(3)), "prestado = 3, got %s", bal.CheckedOut)
}

// Las devoluciones suman al total de entradas y descuentan lo prestado.
func TestAggregateStock_DevolucionRestauraDisponible(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeOut, "A", 6, daysAgo(5)),
		ev(entity.MovementTypeReturn, "A", 4, daysAgo(1)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(8)), "disponible = 10 - 6 + 4 = 8")
	assert.True(t, bal.CheckedOut.Equal(qty(2)), "prestado = 6 - 4 = 2")
}

// Las reservas descuentan disponible sin afectar lo prestado.
func TestAggregateStock_ReservaYLiberacion(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeReserve, "A", 5, daysAgo(4)),
		ev(entity.MovementTypeReserveRelease, "A", 2, daysAgo(3)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(7)), "disponible = 10 - (5-2) = 7")
	assert.True(t, bal.CheckedOut.IsZero(), "reservar no presta")
}

// consume baja el en-bodega pero NO cuenta como prestado: las bajas por
// daño/pérdida no tienen expectativa de devolución.
func TestAggregateStock_ConsumoNoEsPrestamo(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeConsume, "A", 4, daysAgo(2)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(6)))
	assert.True(t, bal.OnHand.Equal(qty(6)))
	assert.True(t, bal.CheckedOut.IsZero())
	assert.True(t, bal.Outstanding.IsZero())
}

// ordered no toca ningún saldo.
func TestAggregateStock_OrderedNoAfectaSaldos(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeOrdered, "A", 99, daysAgo(1)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(10)))
	assert.True(t, bal.OnHand.Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Clamping y casos de borde
// ──────────────────────────────────────────────────────────────────────────────

// El disponible y lo prestado se muestran clampeados a cero, pero Outstanding
// conserva el valor sin clamp para validar sobre-devoluciones.
func TestAggregateStock_ClampDeNegativosConOutstandingCrudo(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeOut, "A", 3, daysAgo(5)),
		ev(entity.MovementTypeReturn, "A", 5, daysAgo(1)), // devuelve más de lo prestado
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.CheckedOut.IsZero(), "prestado se clampa a cero para display")
	assert.True(t, bal.Outstanding.Equal(qty(-2)), "Outstanding conserva el -2 sin clamp")
}

// Una liberación huérfana (release sin reserva) no infla el disponible.
func TestAggregateStock_LiberacionHuerfanaNoInflaDisponible(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeReserveRelease, "A", 5, daysAgo(1)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(qty(10)), "reserva neta negativa se trata como cero")
}

// Evento con qty = 0 no aporta a ningún saldo; evento sin código se excluye
// de todos los agregados sin error.
func TestAggregateStock_BordesCantidadCeroYCodigoVacio(t *testing.T) {
	sinCodigo := ev(entity.MovementTypeIn, "", 50, daysAgo(1))
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(5)),
		ev(entity.MovementTypeOut, "A", 0, daysAgo(2)),
		sinCodigo,
		nil,
	}
	balances := aggregate(t, events)
	require.Len(t, balances, 1, "solo el código A debe aparecer")
	assert.True(t, balances["A"].Available.Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades: idempotencia y conservación
// ──────────────────────────────────────────────────────────────────────────────

// Función pura: dos corridas sobre el mismo conjunto dan idéntico resultado.
func TestAggregateStock_Idempotente(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeOut, "A", 3, daysAgo(5)),
		ev(entity.MovementTypeReserve, "A", 2, daysAgo(4)),
		ev(entity.MovementTypeConsume, "A", 1, daysAgo(2)),
	}
	first := aggregate(t, events)["A"]
	second := aggregate(t, events)["A"]
	assert.True(t, first.Available.Equal(second.Available))
	assert.True(t, first.CheckedOut.Equal(second.CheckedOut))
	assert.True(t, first.OnHand.Equal(second.OnHand))
	assert.Equal(t, first.LastLocation, second.LastLocation)
}

// Conservación: el disponible nunca excede lo que alguna vez entró.
func TestAggregateStock_DisponibleNuncaExcedeEntradas(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeOut, "A", 4, daysAgo(6)),
		ev(entity.MovementTypeReturn, "A", 4, daysAgo(3)),
		ev(entity.MovementTypeReturn, "A", 9, daysAgo(1)), // devolución espuria
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.LessThanOrEqual(bal.InQty),
		"disponible (%s) no puede exceder entradas (%s)", bal.Available, bal.InQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Última actividad y agregación por obra
// ──────────────────────────────────────────────────────────────────────────────

// LastLocation: gana el mayor ts entre eventos con ubicación no vacía.
func TestAggregateStock_UltimaUbicacionPorTimestamp(t *testing.T) {
	early := ev(entity.MovementTypeOut, "A", 1, daysAgo(8))
	early.Location = "Bodega Norte"
	late := ev(entity.MovementTypeOut, "A", 1, daysAgo(2))
	late.Location = "Obra 42"
	noLoc := ev(entity.MovementTypeReturn, "A", 1, daysAgo(1)) // más reciente pero sin ubicación

	// Orden de llegada invertido a propósito: manda el timestamp, no la inserción.
	bal := aggregate(t, []*entity.MovementEvent{noLoc, late, early})["A"]
	require.NotNil(t, bal)
	assert.Equal(t, "Obra 42", bal.LastLocation)
	assert.True(t, bal.LastMoveTS.Equal(daysAgo(1)), "LastMoveTS sí considera todos los eventos")
}

// Obras cerradas quedan fuera de la agregación activa por obra.
func TestAggregateStock_ObrasCerradasExcluidas(t *testing.T) {
	jobs := []*entity.Job{
		{Code: "J1", Status: "active"},
		{Code: "J2", Status: "finalizada"},
	}
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		evJob(entity.MovementTypeOut, "A", "J1", 3, daysAgo(5)),
		evJob(entity.MovementTypeOut, "A", "J2", 2, daysAgo(4)),
		evJob(entity.MovementTypeReserve, "A", "J1", 1, daysAgo(3)),
	}
	snap := ledger.NewSnapshot(now, nil, jobs)
	bal := ledger.AggregateStockMap(events, snap)["A"]
	require.NotNil(t, bal)

	require.Contains(t, bal.Jobs, "J1")
	assert.NotContains(t, bal.Jobs, "J2", "obra cerrada no cuenta como activa")
	assert.True(t, bal.Jobs["J1"].Out.Equal(qty(3)))
	assert.True(t, bal.Jobs["J1"].Reserved.Equal(qty(1)))
	// La salida a J2 sigue descontando el saldo global aunque la obra esté cerrada.
	assert.True(t, bal.Available.Equal(qty(4)), "10 - 3 - 2 - 1 = 4")
}

// El pool sin obra (centinelas) no genera entrada por obra.
func TestAggregateStock_PoolGeneralNoRastreadoPorObra(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		evJob(entity.MovementTypeOut, "A", "general", 2, daysAgo(3)),
		evJob(entity.MovementTypeOut, "A", "unassigned", 1, daysAgo(2)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.Empty(t, bal.Jobs)
	assert.True(t, bal.CheckedOut.Equal(qty(3)))
}

// Alerta de stock bajo usando el umbral del catálogo.
func TestAggregateStock_AlertaStockBajo(t *testing.T) {
	it := item("A", "Taladro", 100)
	it.MinStock = qty(5)
	it.LowStockAlert = true
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 10, daysAgo(9)),
		ev(entity.MovementTypeOut, "A", 8, daysAgo(1)),
	}
	snap := ledger.NewSnapshot(now, []*entity.Item{it}, nil)
	bal := ledger.AggregateStockMap(events, snap)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.LowStock, "disponible 2 < umbral 5")
}

// decimal en todos los caminos: cantidades fraccionales no pierden precisión.
func TestAggregateStock_CantidadesDecimales(t *testing.T) {
	events := []*entity.MovementEvent{
		ev(entity.MovementTypeIn, "A", 2.5, daysAgo(3)),
		ev(entity.MovementTypeOut, "A", 0.75, daysAgo(1)),
	}
	bal := aggregate(t, events)["A"]
	require.NotNil(t, bal)
	assert.True(t, bal.Available.Equal(decimal.NewFromFloat(1.75)))
}
