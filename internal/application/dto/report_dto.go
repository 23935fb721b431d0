package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// ReportRequest query params de GET /api/reports. Fechas "YYYY-MM-DD";
// category vacío o "ALL" significa todas.
type ReportRequest struct {
	From     string `query:"from"`
	To       string `query:"to"`
	Category string `query:"category"`
}

// ReportDTO respuesta del reporte: rollup monetario por categoría más la serie
// de tendencia mensual valor-salvado vs pérdida-por-merma.
type ReportDTO struct {
	Categories []CategoryRollupDTO    `json:"categories"`
	TotalValue decimal.Decimal        `json:"total_value"`
	Trend      []TrendPointDTO        `json:"trend"`
	Rejected   []expiry.RejectedBatch `json:"rejected,omitempty"`
}

// CategoryRollupDTO valor de inventario de una categoría (con color de presentación).
type CategoryRollupDTO struct {
	Category       string          `json:"category"`
	Quantity       int64           `json:"quantity"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	Color          string          `json:"color"`
}

// TrendPointDTO punto mensual de la serie de mermas.
type TrendPointDTO struct {
	Month       string          `json:"month"`
	ValueSaved  decimal.Decimal `json:"value_saved"`
	WastageLoss decimal.Decimal `json:"wastage_loss"`
}

// FromReportRollup proyecta el rollup del motor al DTO de salida.
func FromReportRollup(rollup *expiry.ReportRollup) *ReportDTO {
	categories := make([]CategoryRollupDTO, 0, len(rollup.Categories))
	for _, c := range rollup.Categories {
		categories = append(categories, CategoryRollupDTO{
			Category:       c.Category,
			Quantity:       c.Quantity,
			InventoryValue: c.InventoryValue.Round(2),
			Color:          CategoryColor(c.Category),
		})
	}

	trend := make([]TrendPointDTO, 0, len(rollup.Trend))
	for _, p := range rollup.Trend {
		trend = append(trend, TrendPointDTO{
			Month:       p.Label,
			ValueSaved:  p.ValueSaved.Round(2),
			WastageLoss: p.WastageLoss.Round(2),
		})
	}

	return &ReportDTO{
		Categories: categories,
		TotalValue: rollup.TotalValue.Round(2),
		Trend:      trend,
		Rejected:   rollup.Rejected,
	}
}
