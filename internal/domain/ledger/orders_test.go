package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
)

func ordered(id, code string, n float64, ts int) *entity.MovementEvent {
	e := ev(entity.MovementTypeOrdered, code, n, daysAgo(ts))
	e.ID = id
	return e
}

func receipt(code string, n float64, ts int, sourceID string) *entity.MovementEvent {
	e := ev(entity.MovementTypeIn, code, n, daysAgo(ts))
	e.SourceID = sourceID
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasada primaria: recepciones con enlace explícito
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: ordered(O1, B, 20, eta mañana) + in(B, 8, sourceId=O1)
// → fila {B, openQty 12, eta mañana}.
func TestBuildIncomingRows_RecepcionParcialEnlazada(t *testing.T) {
	o := ordered("O1", "B", 20, 5)
	o.ETA = tp(daysAhead(1))
	r := receipt("B", 8, 2, "O1")

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o, r}, now)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.True(t, row.OpenQty.Equal(qty(12)))
	assert.True(t, row.CheckedIn.Equal(qty(8)))
	assert.True(t, row.InferredQty.IsZero(), "recepción enlazada no es inferida")
	require.NotNil(t, row.ETA)
	assert.True(t, row.ETA.Equal(daysAhead(1)))
	assert.False(t, row.Late)
}

// Orden totalmente recibida desaparece de la vista de entrantes.
func TestBuildIncomingRows_OrdenCompletaSeDescarta(t *testing.T) {
	events := []*entity.MovementEvent{
		ordered("O1", "B", 10, 5),
		receipt("B", 10, 1, "O1"),
	}
	rows := ledger.BuildIncomingRows(events, now)
	assert.Empty(t, rows)
}

// Varios eventos ordered con el mismo source_id acumulan bajo una sola OC
// (reórdenes parciales) y conservan la primera ETA no nula vista.
func TestBuildIncomingRows_ReordenesAcumulanBajoUnaOC(t *testing.T) {
	first := ordered("O1a", "B", 5, 9)
	first.SourceID = "PO-7"
	second := ordered("O1b", "B", 3, 4)
	second.SourceID = "PO-7"
	second.ETA = tp(daysAhead(2)) // primera ETA no nula del grupo

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{second, first}, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "PO-7", rows[0].SourceID)
	assert.True(t, rows[0].Ordered.Equal(qty(8)))
	require.NotNil(t, rows[0].ETA)
	assert.True(t, rows[0].ETA.Equal(daysAhead(2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasada de respaldo: asignación FIFO de recepciones sin enlace
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: ordered(O2, B, 10, J2) + in sin sourceId (B, 10, J2)
// → la heurística cierra O2 y la fila sale de la vista.
func TestBuildIncomingRows_RespaldoCierraOrdenPorCodigoYObra(t *testing.T) {
	o := ordered("O2", "B", 10, 5)
	o.JobID = "J2"
	r := receipt("B", 10, 1, "") // sin enlace
	r.JobID = "J2"

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o, r}, now)
	assert.Empty(t, rows, "la asignación FIFO debe cerrar O2 por completo")
}

// FIFO: la orden más antigua absorbe primero; el sobrante pasa a la siguiente.
func TestBuildIncomingRows_RespaldoFIFOEntreOrdenesAbiertas(t *testing.T) {
	vieja := ordered("O-vieja", "B", 6, 10)
	nueva := ordered("O-nueva", "B", 6, 3)
	r := receipt("B", 8, 1, "")

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{nueva, vieja, r}, now)
	require.Len(t, rows, 1, "la vieja queda cerrada; solo la nueva sigue abierta")
	assert.Equal(t, "O-nueva", rows[0].SourceID)
	assert.True(t, rows[0].OpenQty.Equal(qty(4)), "6 - (8-6) = 4")
	assert.True(t, rows[0].InferredQty.Equal(qty(2)), "rastro de auditoría de lo inferido")
}

// La heurística no cruza pares (código, obra) distintos.
func TestBuildIncomingRows_RespaldoNoCruzaObras(t *testing.T) {
	o := ordered("O1", "B", 10, 5)
	o.JobID = "J1"
	r := receipt("B", 10, 1, "")
	r.JobID = "J2" // otra obra

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o, r}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].OpenQty.Equal(qty(10)), "la recepción de J2 no abona a la orden de J1")
}

// Una devolución sin source_id NO es recepción de OC (solo con enlace explícito).
func TestBuildIncomingRows_DevolucionSinEnlaceNoAbona(t *testing.T) {
	o := ordered("O1", "B", 10, 5)
	ret := ev(entity.MovementTypeReturn, "B", 10, daysAgo(1))

	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o, ret}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].OpenQty.Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de conservación del cruce
// ──────────────────────────────────────────────────────────────────────────────

// Para cualquier combinación: Σ checkedIn ≤ Σ ordered por orden, y el
// asignador nunca reparte más que la cantidad recibida.
func TestBuildIncomingRows_Conservacion(t *testing.T) {
	events := []*entity.MovementEvent{
		ordered("O1", "B", 5, 9),
		ordered("O2", "B", 3, 7),
		receipt("B", 4, 5, "O1"),
		receipt("B", 20, 2, ""), // excede todo lo abierto
	}
	rows := ledger.BuildIncomingRows(events, now)
	assert.Empty(t, rows, "todo quedó cubierto")

	// Reconstruir con una orden extra para observar los saldos.
	events = append(events, ordered("O3", "B", 100, 1))
	rows = ledger.BuildIncomingRows(events, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "O3", rows[0].SourceID)
	// O1 y O2 absorben 1 + 3 del respaldo; el resto (16) cae en O3.
	assert.True(t, rows[0].CheckedIn.Equal(qty(16)))
	assert.True(t, rows[0].CheckedIn.LessThanOrEqual(rows[0].Ordered),
		"ninguna orden recibe más de lo ordenado")
}

// Una sobre-recepción con enlace explícito también respeta la conservación:
// el abono se tope en lo ordenado y el exceso no se derrama a otras órdenes
// abiertas del mismo código.
func TestBuildIncomingRows_ConservacionSobreRecepcionEnlazada(t *testing.T) {
	events := []*entity.MovementEvent{
		ordered("O1", "B", 10, 9),
		ordered("O2", "B", 10, 7),
		receipt("B", 30, 2, "O1"), // triple de lo ordenado en O1
	}
	rows := ledger.BuildIncomingRows(events, now)
	require.Len(t, rows, 1, "O1 queda cubierta; O2 sigue abierta")
	assert.Equal(t, "O2", rows[0].SourceID)
	assert.True(t, rows[0].CheckedIn.IsZero(), "el exceso enlazado a O1 no abona a O2")
	assert.True(t, rows[0].OpenQty.Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lateness y orden de display
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildIncomingRows_ETAVencidaMarcaLate(t *testing.T) {
	o := ordered("O1", "B", 10, 9)
	o.ETA = tp(daysAgo(2))
	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Late)
}

// ETA ascendente primero; filas sin ETA al final por fecha de orden.
func TestBuildIncomingRows_OrdenDeUrgencia(t *testing.T) {
	urgente := ordered("O-urgente", "A", 1, 9)
	urgente.ETA = tp(daysAgo(1))
	proxima := ordered("O-proxima", "B", 1, 9)
	proxima.ETA = tp(daysAhead(5))
	sinETAVieja := ordered("O-sin-eta-vieja", "C", 1, 8)
	sinETANueva := ordered("O-sin-eta-nueva", "D", 1, 2)

	rows := ledger.BuildIncomingRows(
		[]*entity.MovementEvent{sinETANueva, proxima, sinETAVieja, urgente}, now)
	require.Len(t, rows, 4)
	got := []string{rows[0].SourceID, rows[1].SourceID, rows[2].SourceID, rows[3].SourceID}
	assert.Equal(t, []string{"O-urgente", "O-proxima", "O-sin-eta-vieja", "O-sin-eta-nueva"}, got)
}

// Cantidades decimales sobreviven el cruce sin redondeos.
func TestBuildIncomingRows_CantidadesDecimales(t *testing.T) {
	o := ordered("O1", "B", 2.5, 5)
	r := receipt("B", 1.25, 1, "O1")
	rows := ledger.BuildIncomingRows([]*entity.MovementEvent{o, r}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].OpenQty.Equal(decimal.NewFromFloat(1.25)))
}
