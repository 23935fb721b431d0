package expiry

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
)

// ErrInvalidRange filtro de reporte con from posterior a to.
var ErrInvalidRange = errors.New("rango de fechas inválido: from es posterior a to")

// CategoryAll valor de filtro que significa "todas las categorías".
const CategoryAll = "ALL"

// ReportFilter recorte opcional del universo de lotes para un reporte.
// From/To acotan por fecha de vencimiento (inclusivo en ambos extremos);
// nil = sin cota por ese lado. Category vacío o "ALL" = todas.
type ReportFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

// CategoryRollup valor de inventario acumulado de una categoría.
type CategoryRollup struct {
	Category       string          `json:"category"`
	Quantity       int64           `json:"quantity"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// TrendPoint punto mensual de la serie valor-salvado vs pérdida-por-merma.
type TrendPoint struct {
	Month       time.Time       `json:"-"`
	Label       string          `json:"month"`
	ValueSaved  decimal.Decimal `json:"value_saved"`
	WastageLoss decimal.Decimal `json:"wastage_loss"`
}

// ReportRollup proyección de reporte: rollup monetario por categoría más la
// serie de tendencia mensual. Categories va en orden alfabético para que dos
// ejecuciones con el mismo input produzcan bytes idénticos.
type ReportRollup struct {
	Categories []CategoryRollup `json:"categories"`
	TotalValue decimal.Decimal  `json:"total_value"`
	Trend      []TrendPoint     `json:"trend"`
	Rejected   []RejectedBatch  `json:"rejected,omitempty"`
}

// matches decide si un lote entra al reporte según el filtro.
// El recorte es una restricción pura del conjunto: no reclasifica nada.
func (f ReportFilter) matches(b entity.InventoryBatch) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, CategoryAll) && b.CategoryName != f.Category {
		return false
	}
	if b.ExpiryDate == nil {
		return true // se reporta como rechazado en la clasificación, no aquí
	}
	exp := Midnight(*b.ExpiryDate)
	if f.From != nil && exp.Before(Midnight(*f.From)) {
		return false
	}
	if f.To != nil && exp.After(Midnight(*f.To)) {
		return false
	}
	return true
}

// ProjectReport proyecta los rollups por categoría y la serie de tendencia.
//
// events es el feed externo de disposición (ventas de salvamento y descartes);
// puede ser nil si el sistema aún no registra mermas. Los lotes se clasifican
// con las mismas reglas de Classify: el filtrado jamás altera el estado que
// recibiría un lote fuera del reporte. Si filter.From > filter.To se devuelve
// ErrInvalidRange sin resultado parcial.
func ProjectReport(
	batches []entity.InventoryBatch,
	events []entity.WasteEvent,
	filter ReportFilter,
	today time.Time,
) (*ReportRollup, error) {
	if filter.From != nil && filter.To != nil && Midnight(*filter.From).After(Midnight(*filter.To)) {
		return nil, ErrInvalidRange
	}
	today = Midnight(today)

	// Recorte puro del conjunto de lotes
	subset := make([]entity.InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if filter.matches(b) {
			subset = append(subset, b)
		}
	}

	classified, rejected := ClassifyBatches(subset, today)

	// Rollup por categoría
	byCategory := make(map[string]CategoryRollup)
	totalValue := decimal.Zero
	for _, cb := range classified {
		value := cb.UnitPrice.Mul(decimal.NewFromInt(cb.Quantity))
		r := byCategory[cb.CategoryName]
		r.Category = cb.CategoryName
		r.Quantity += cb.Quantity
		r.InventoryValue = r.InventoryValue.Add(value)
		byCategory[cb.CategoryName] = r
		totalValue = totalValue.Add(value)
	}
	categories := make([]CategoryRollup, 0, len(byCategory))
	for _, r := range byCategory {
		categories = append(categories, r)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	trend := buildTrend(events, filter, today)

	return &ReportRollup{
		Categories: categories,
		TotalValue: totalValue,
		Trend:      trend,
		Rejected:   rejected,
	}, nil
}

// buildTrend agrupa los eventos de merma por mes calendario dentro de la
// ventana del filtro. Sin ventana explícita la serie cubre los últimos
// DefaultForecastMonths meses terminando en el mes de today. Los meses sin
// eventos aparecen igual, con ambos valores en cero.
func buildTrend(events []entity.WasteEvent, filter ReportFilter, today time.Time) []TrendPoint {
	var start, end time.Time
	if filter.From != nil && filter.To != nil {
		start = firstOfMonth(*filter.From)
		end = firstOfMonth(*filter.To)
	} else {
		end = firstOfMonth(today)
		start = end.AddDate(0, -(DefaultForecastMonths - 1), 0)
	}

	months := monthsApart(start, end) + 1
	trend := make([]TrendPoint, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		trend[i] = TrendPoint{
			Month:       month,
			Label:       monthLabel(month),
			ValueSaved:  decimal.Zero,
			WastageLoss: decimal.Zero,
		}
	}

	for _, ev := range events {
		idx := monthsApart(start, ev.Date)
		if idx < 0 || idx >= months {
			continue
		}
		switch ev.Type {
		case entity.WasteEventSAVED:
			trend[idx].ValueSaved = trend[idx].ValueSaved.Add(ev.Value)
		case entity.WasteEventLOSS:
			trend[idx].WastageLoss = trend[idx].WastageLoss.Add(ev.Value)
		}
	}
	return trend
}

// firstOfMonth primer día del mes de t, medianoche UTC.
func firstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
