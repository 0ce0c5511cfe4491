// Package pdf implementa la generación del reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Título + Fecha de corte     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA STOCK: Código | Ítem | Disp | Prestado | Resv | Bod  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENCIDOS: Código | Obra | Pendiente | Vencida | Días │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de generación                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/application/reports"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ reports.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(
	_ context.Context,
	company *entity.Company,
	stock *dto.StockListResponse,
	overdue *dto.OverdueListResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, stock))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de saldos por ítem
	m.AddRows(sectionTitleRow("SALDOS POR ÍTEM"))
	m.AddRows(stockHeaderRow())
	for _, r := range stockDetailRows(stock.Items) {
		m.AddRows(r)
	}

	// Préstamos vencidos
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("PRÉSTAMOS VENCIDOS"))
	if len(overdue.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin préstamos vencidos al corte.", props.Text{
				Size: 8, Color: colorGray, Top: 2, Left: 1,
			}),
		)))
	} else {
		m.AddRows(overdueHeaderRow())
		for _, r := range overdueDetailRows(overdue.Items) {
			m.AddRows(r)
		}
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(stock))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y título + fecha de corte (der).
func headerRow(company *entity.Company, stock *dto.StockListResponse) core.Row {
	corte := stock.AsOf.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.NIT, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d ítems", len(stock.Items)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Corte: "+corte, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// stockHeaderRow: cabecera de la tabla de saldos.
func stockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Ítem", 4, align.Left),
		h("Disponible", 2, align.Right),
		h("Prestado", 2, align.Right),
		h("Reservado", 1, align.Right),
		h("Bodega", 1, align.Right),
	)
}

// stockDetailRows: una fila por ítem; el disponible en rojo si hay alerta.
func stockDetailRows(items []dto.StockRowDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		availColor := colorGray
		if it.LowStock {
			availColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.Code, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(it.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(it.Available.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: availColor,
			})),
			col.New(2).Add(text.New(it.CheckedOut.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(it.Reserved.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(it.OnHand.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// overdueHeaderRow: cabecera de la tabla de vencidos.
func overdueHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Ítem", 3, align.Left),
		h("Obra", 3, align.Left),
		h("Pendiente", 2, align.Right),
		h("Días", 2, align.Right),
	)
}

// overdueDetailRows: una fila por préstamo vencido.
func overdueDetailRows(items []dto.OverdueRowDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.Code, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(it.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(nonEmpty(it.JobID, ledger.GeneralJobName), props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(it.Outstanding.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.DaysLate), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return result
}

// footerRow: leyenda de generación.
func footerRow(stock *dto.StockListResponse) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Reporte generado a partir del libro de movimientos al corte "+
				stock.AsOf.Format("2006-01-02 15:04:05 MST")+
				". Los saldos se derivan del historial completo de eventos.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
