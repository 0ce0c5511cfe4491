package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeJobID: todos los centinelas de "sin obra" colapsan a ""
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeJobID_CentinelasColapsanAVacio(t *testing.T) {
	sentinels := []string{"", "general", "General", "GENERAL", " general ",
		"general inventory", "none", "None", "unassigned", "UNASSIGNED"}
	for _, s := range sentinels {
		assert.Equal(t, "", ledger.NormalizeJobID(s), "centinela %q debe normalizar a vacío", s)
	}
}

func TestNormalizeJobID_ObraRealSeConserva(t *testing.T) {
	assert.Equal(t, "OBRA-42", ledger.NormalizeJobID("OBRA-42"))
	assert.Equal(t, "OBRA-42", ledger.NormalizeJobID("  OBRA-42  "), "se recorta whitespace")
	// "generalisimo" no es centinela aunque contenga "general"
	assert.Equal(t, "generalisimo", ledger.NormalizeJobID("generalisimo"))
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseWhen: epoch millis y fechas parseables; lo demás es ausente
// ──────────────────────────────────────────────────────────────────────────────

func TestParseWhen_EpochMillis(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	got, ok := ledger.ParseWhen("1773576000000")
	require.True(t, ok)
	assert.True(t, got.Equal(ref), "epoch millis debe interpretarse en UTC: got %v", got)
}

func TestParseWhen_FormatosDeFecha(t *testing.T) {
	cases := []string{
		"2026-03-15T12:00:00Z",
		"2026-03-15T12:00:00",
		"2026-03-15 12:00:00",
		"2026-03-15",
	}
	for _, c := range cases {
		_, ok := ledger.ParseWhen(c)
		assert.True(t, ok, "formato %q debe ser parseable", c)
	}
}

func TestParseWhen_NoParseableEsAusente(t *testing.T) {
	for _, c := range []string{"", "   ", "mañana", "15/03/2026", "not-a-date"} {
		_, ok := ledger.ParseWhen(c)
		assert.False(t, ok, "valor %q debe tratarse como ausente, nunca como ahora", c)
	}
}
