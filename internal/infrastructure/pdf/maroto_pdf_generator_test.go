package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Smoke test del reporte: debe producir un PDF válido con saldos, un vencido
// del pool general (sin obra → etiqueta "General") y uno asignado a obra.
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateStockReport_ProducePDF(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	company := &entity.Company{
		ID:   "co-1",
		Name: "Constructora Andina S.A.S.",
		NIT:  "900123456-7",
	}
	stock := &dto.StockListResponse{
		AsOf: asOf,
		Items: []dto.StockRowDTO{
			{
				Code:      "TAL-01",
				Name:      "Taladro percutor",
				Available: decimal.NewFromInt(4),
				OnHand:    decimal.NewFromInt(6),
			},
			{
				Code:     "CAS-02",
				Name:     "Casco de seguridad",
				LowStock: true, // fila resaltada en rojo
			},
		},
	}
	overdue := &dto.OverdueListResponse{
		AsOf: asOf,
		Items: []dto.OverdueRowDTO{
			{
				Code:        "TAL-01",
				Name:        "Taladro percutor",
				JobID:       "", // pool general → debe renderizar "General"
				Outstanding: decimal.NewFromInt(2),
				DueDate:     asOf.AddDate(0, 0, -3),
				DaysLate:    3,
			},
			{
				Code:        "AND-03",
				Name:        "Andamio",
				JobID:       "OBRA-9",
				Outstanding: decimal.NewFromInt(1),
				DueDate:     asOf.AddDate(0, 0, -1),
				DaysLate:    1,
			},
		},
	}

	got, err := NewMarotoPDFGenerator().GenerateStockReport(context.Background(), company, stock, overdue)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "%PDF", string(got[:4]), "los bytes deben empezar con la firma PDF")
}

// Sin vencidos el reporte igual se genera (mensaje "Sin préstamos vencidos").
func TestGenerateStockReport_SinVencidos(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	company := &entity.Company{ID: "co-1", Name: "Constructora Andina S.A.S.", NIT: "900123456-7"}
	stock := &dto.StockListResponse{AsOf: asOf}
	overdue := &dto.OverdueListResponse{AsOf: asOf}

	got, err := NewMarotoPDFGenerator().GenerateStockReport(context.Background(), company, stock, overdue)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
