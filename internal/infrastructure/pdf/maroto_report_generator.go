// Package pdf implementa la exportación PDF del reporte de inventario
// perecedero usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Unidades | Valor de inventario           │
//	│  TOTAL GENERAL                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENDENCIA: Mes | Valor salvado | Pérdida por merma          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: lotes rechazados (si los hay) + leyenda             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/SmartTrack-api/internal/application/dto"
	"github.com/jhoicas/SmartTrack-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 122, Blue: 87}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(report *dto.ReportDTO, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Rollup por categoría
	m.AddRows(categoryHeaderRow())
	for _, r := range categoryRows(report.Categories) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report))

	// Serie de tendencia
	if len(report.Trend) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(trendHeaderRow())
		for _, r := range trendRows(report.Trend) {
			m.AddRows(r)
		}
	}

	// Lotes rechazados por datos inválidos
	if len(report.Rejected) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range rejectedRows(report) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestión de inventario perecedero", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// categoryHeaderRow: cabecera de la tabla de categorías.
func categoryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 6, align.Left),
		h("Unidades", 2, align.Right),
		h("Valor de inventario", 4, align.Right),
	)
}

// categoryRows: una fila por categoría, en orden alfabético.
func categoryRows(categories []dto.CategoryRollupDTO) []core.Row {
	result := make([]core.Row, 0, len(categories))
	for _, c := range categories {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				c.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", c.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(4).Add(text.New(
				"$"+c.InventoryValue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: valor total del inventario filtrado.
func totalRow(report *dto.ReportDTO) core.Row {
	return row.New(9).Add(
		col.New(8).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(4).Add(text.New("$"+report.TotalValue.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

// trendHeaderRow: cabecera de la serie mensual de mermas.
func trendHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Mes", 4, align.Left),
		h("Valor salvado", 4, align.Right),
		h("Pérdida por merma", 4, align.Right),
	)
}

// trendRows: una fila por mes de la serie.
func trendRows(trend []dto.TrendPointDTO) []core.Row {
	result := make([]core.Row, 0, len(trend))
	for _, p := range trend {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				p.Month,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				"$"+p.ValueSaved.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(4).Add(text.New(
				"$"+p.WastageLoss.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorDanger},
			)),
		))
	}
	return result
}

// rejectedRows: lotes excluidos del reporte por datos inválidos.
func rejectedRows(report *dto.ReportDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("LOTES EXCLUIDOS POR DATOS INVÁLIDOS (%d)", len(report.Rejected)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorDanger, Top: 1,
			}),
		)),
	}
	for _, rej := range report.Rejected {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Lote %s: %s", rej.BatchID, rej.Reason), props.Text{
				Size: 6.5, Color: colorGray, Top: 0.5, Left: 2,
			}),
		)))
	}
	return rows
}
