package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Detección de vencidos por (código, obra)
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: out(A, J1, 5, vence ayer) → una fila vencida con
// pendiente 5 y un día de atraso.
func TestBuildOverdueRows_SalidaVencidaAyer(t *testing.T) {
	out := evJob(entity.MovementTypeOut, "A", "J1", 5, daysAgo(3))
	out.ReturnDate = tp(daysAgo(1))

	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{out}, now)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "A", row.Code)
	assert.Equal(t, "J1", row.JobID)
	assert.True(t, row.Outstanding.Equal(qty(5)))
	assert.Equal(t, 1, row.DaysLate)
	assert.True(t, row.MinDue.Equal(daysAgo(1)))
}

// Sin fecha comprometida no hay vencimiento, por grande que sea el pendiente.
func TestBuildOverdueRows_SinFechaNoVence(t *testing.T) {
	out := evJob(entity.MovementTypeOut, "A", "J1", 50, daysAgo(100))
	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{out}, now)
	assert.Empty(t, rows)
}

// Fecha comprometida futura: pendiente pero no vencido.
func TestBuildOverdueRows_FechaFuturaNoVence(t *testing.T) {
	out := evJob(entity.MovementTypeOut, "A", "J1", 5, daysAgo(1))
	out.ReturnDate = tp(daysAhead(3))
	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{out}, now)
	assert.Empty(t, rows)
}

// Gobierna la fecha MÁS temprana del grupo: el grupo está tarde en cuanto
// vence su primera obligación.
func TestBuildOverdueRows_GobiernaFechaMasTemprana(t *testing.T) {
	first := evJob(entity.MovementTypeOut, "A", "J1", 2, daysAgo(10))
	first.ReturnDate = tp(daysAgo(4))
	second := evJob(entity.MovementTypeOut, "A", "J1", 3, daysAgo(8))
	second.ReturnDate = tp(daysAhead(5)) // aún no vence

	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{second, first}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].MinDue.Equal(daysAgo(4)))
	assert.Equal(t, 4, rows[0].DaysLate)
	assert.True(t, rows[0].Outstanding.Equal(qty(5)), "el pendiente agrega todo el grupo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Monotonía de devoluciones
// ──────────────────────────────────────────────────────────────────────────────

// Devolver todo el pendiente saca al grupo de la lista de vencidos; una
// devolución parcial lo reduce pero lo mantiene vencido.
func TestBuildOverdueRows_DevolucionesReducenYCierran(t *testing.T) {
	out := evJob(entity.MovementTypeOut, "A", "J1", 5, daysAgo(6))
	out.ReturnDate = tp(daysAgo(2))

	// Devolución parcial: sigue vencido con pendiente 2.
	parcial := evJob(entity.MovementTypeReturn, "A", "J1", 3, daysAgo(1))
	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{out, parcial}, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Outstanding.Equal(qty(2)))

	// Devolución total (qty >= pendiente): desaparece de la lista.
	total := evJob(entity.MovementTypeReturn, "A", "J1", 2, daysAgo(0))
	rows = ledger.BuildOverdueRows([]*entity.MovementEvent{out, parcial, total}, now)
	assert.Empty(t, rows)
}

// Las obras se agrupan por id normalizado: "general" y "" son el mismo grupo.
func TestBuildOverdueRows_AgrupaPorObraNormalizada(t *testing.T) {
	out := evJob(entity.MovementTypeOut, "A", "general", 4, daysAgo(5))
	out.ReturnDate = tp(daysAgo(2))
	ret := evJob(entity.MovementTypeReturn, "A", "", 4, daysAgo(1))

	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{out, ret}, now)
	assert.Empty(t, rows, "la devolución al pool general cancela la salida del pool general")
}

// Orden de display: más días de atraso primero.
func TestBuildOverdueRows_OrdenPorAtrasoDescendente(t *testing.T) {
	a := evJob(entity.MovementTypeOut, "A", "J1", 1, daysAgo(9))
	a.ReturnDate = tp(daysAgo(2))
	b := evJob(entity.MovementTypeOut, "B", "J1", 1, daysAgo(9))
	b.ReturnDate = tp(daysAgo(7))

	rows := ledger.BuildOverdueRows([]*entity.MovementEvent{a, b}, now)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Code, "B lleva 7 días tarde y va primero")
	assert.Equal(t, "A", rows[1].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// OutstandingFor: soporte de la validación de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestOutstandingFor_ParCodigoObra(t *testing.T) {
	events := []*entity.MovementEvent{
		evJob(entity.MovementTypeOut, "A", "J1", 5, daysAgo(4)),
		evJob(entity.MovementTypeOut, "A", "J2", 7, daysAgo(3)),
		evJob(entity.MovementTypeReturn, "A", "J1", 2, daysAgo(1)),
	}
	assert.True(t, ledger.OutstandingFor(events, "A", "J1").Equal(qty(3)))
	assert.True(t, ledger.OutstandingFor(events, "A", "J2").Equal(qty(7)))
	assert.True(t, ledger.OutstandingFor(events, "A", "J3").IsZero())
}

// El valor es crudo (sin clamp): una sobre-devolución previa queda visible.
func TestOutstandingFor_SinClamp(t *testing.T) {
	events := []*entity.MovementEvent{
		evJob(entity.MovementTypeOut, "A", "J1", 3, daysAgo(2)),
		evJob(entity.MovementTypeReturn, "A", "J1", 5, daysAgo(1)),
	}
	assert.True(t, ledger.OutstandingFor(events, "A", "J1").Equal(qty(-2)))
}
