package expiry

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultForecastMonths meses del pronóstico de vencimientos si el caller no indica otro.
const DefaultForecastMonths = 6

// aggregateParallelThreshold tamaño de colección a partir del cual el fold se
// particiona entre goroutines. Por debajo, el costo de coordinar supera al ahorro.
const aggregateParallelThreshold = 5000

// ErrForecastMonths error de configuración: el horizonte del pronóstico debe ser positivo.
var ErrForecastMonths = errors.New("forecast_months debe ser mayor que cero")

// Estados globales del sistema derivados de los contadores.
const (
	SystemStatusHealthy  = "HEALTHY"
	SystemStatusWarning  = "WARNING"
	SystemStatusCritical = "CRITICAL"
)

// CategoryStock acumulado de una categoría dentro de StockDistribution.
// Count es suma de CANTIDADES, no número de lotes, para que la distribución
// sea consistente con TotalStock (ver DESIGN.md).
type CategoryStock struct {
	Count int64           `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// ForecastBucket volumen de vencimiento de un mes calendario.
type ForecastBucket struct {
	Month        time.Time `json:"-"`     // primer día del mes, medianoche UTC
	Label        string    `json:"month"` // ej: "Ene 2026"
	ExpiryVolume int64     `json:"expiry_volume"`
}

// AggregateSnapshot resumen listo para el dashboard, derivado de una sola
// pasada de clasificación. Efímero: se recalcula en cada consulta.
type AggregateSnapshot struct {
	TotalStock      int64
	InventoryValue  decimal.Decimal
	NearExpiryCount int64
	ExpiredCount    int64
	SystemStatus    string

	StockDistribution map[string]CategoryStock
	ExpiryForecast    []ForecastBucket // exactamente forecastMonths entradas, sin huecos
	FEFOList          []ClassifiedBatch
}

// aggregatePartial acumuladores de una partición del fold. Sumas y conteos
// son reducciones independientes del orden, así que las particiones se
// combinan sin importar cómo se repartió la colección.
type aggregatePartial struct {
	totalStock      int64
	inventoryValue  decimal.Decimal
	nearExpiryCount int64
	expiredCount    int64
	distribution    map[string]CategoryStock
	forecast        []int64
}

// BuildAggregate pliega una colección ya clasificada en un AggregateSnapshot.
//
// today debe ser la MISMA fecha con la que se clasificó la colección; el
// pronóstico parte del mes que contiene today. forecastMonths <= 0 devuelve
// ErrForecastMonths sin resultado parcial.
//
// Para colecciones grandes el fold se particiona entre goroutines y las
// sumas/conteos se combinan al final; el orden FEFO se calcula después de la
// combinación, nunca por partición, para preservar el orden global.
func BuildAggregate(classified []ClassifiedBatch, today time.Time, forecastMonths int) (*AggregateSnapshot, error) {
	if forecastMonths <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrForecastMonths, forecastMonths)
	}

	today = Midnight(today)
	forecastStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var total aggregatePartial
	if len(classified) < aggregateParallelThreshold {
		total = foldPartition(classified, forecastStart, forecastMonths)
	} else {
		total = foldParallel(classified, forecastStart, forecastMonths)
	}

	status := SystemStatusHealthy
	switch {
	case total.expiredCount > 0:
		status = SystemStatusCritical
	case total.nearExpiryCount > 0:
		status = SystemStatusWarning
	}

	forecast := make([]ForecastBucket, forecastMonths)
	for i := 0; i < forecastMonths; i++ {
		month := forecastStart.AddDate(0, i, 0)
		forecast[i] = ForecastBucket{
			Month:        month,
			Label:        monthLabel(month),
			ExpiryVolume: total.forecast[i],
		}
	}

	return &AggregateSnapshot{
		TotalStock:        total.totalStock,
		InventoryValue:    total.inventoryValue,
		NearExpiryCount:   total.nearExpiryCount,
		ExpiredCount:      total.expiredCount,
		SystemStatus:      status,
		StockDistribution: total.distribution,
		ExpiryForecast:    forecast,
		FEFOList:          RankFEFO(classified, RankPriority),
	}, nil
}

// foldPartition acumula una partición de forma secuencial.
func foldPartition(part []ClassifiedBatch, forecastStart time.Time, forecastMonths int) aggregatePartial {
	p := aggregatePartial{
		distribution: make(map[string]CategoryStock),
		forecast:     make([]int64, forecastMonths),
	}
	for _, cb := range part {
		p.totalStock += cb.Quantity
		p.inventoryValue = p.inventoryValue.Add(cb.UnitPrice.Mul(decimal.NewFromInt(cb.Quantity)))

		switch cb.Status {
		case StatusNearExpiry:
			p.nearExpiryCount++
		case StatusExpired:
			p.expiredCount++
		}

		cat := p.distribution[cb.CategoryName]
		cat.Count += cb.Quantity
		cat.Value = cat.Value.Add(cb.UnitPrice.Mul(decimal.NewFromInt(cb.Quantity)))
		p.distribution[cb.CategoryName] = cat

		// Pronóstico: solo lotes aún no vencidos cuyo mes cae en la ventana.
		if cb.DaysUntilExpiry >= 0 {
			if idx := monthsApart(forecastStart, *cb.ExpiryDate); idx >= 0 && idx < forecastMonths {
				p.forecast[idx] += cb.Quantity
			}
		}
	}
	return p
}

// foldParallel reparte la colección entre workers y combina los parciales.
func foldParallel(classified []ClassifiedBatch, forecastStart time.Time, forecastMonths int) aggregatePartial {
	workers := runtime.NumCPU()
	if workers > len(classified) {
		workers = len(classified)
	}
	chunk := (len(classified) + workers - 1) / workers

	partials := make(chan aggregatePartial, workers)
	launched := 0
	for start := 0; start < len(classified); start += chunk {
		end := start + chunk
		if end > len(classified) {
			end = len(classified)
		}
		launched++
		go func(part []ClassifiedBatch) {
			partials <- foldPartition(part, forecastStart, forecastMonths)
		}(classified[start:end])
	}

	total := aggregatePartial{
		distribution: make(map[string]CategoryStock),
		forecast:     make([]int64, forecastMonths),
	}
	for i := 0; i < launched; i++ {
		p := <-partials
		total.totalStock += p.totalStock
		total.inventoryValue = total.inventoryValue.Add(p.inventoryValue)
		total.nearExpiryCount += p.nearExpiryCount
		total.expiredCount += p.expiredCount
		for name, cat := range p.distribution {
			acc := total.distribution[name]
			acc.Count += cat.Count
			acc.Value = acc.Value.Add(cat.Value)
			total.distribution[name] = acc
		}
		for idx, vol := range p.forecast {
			total.forecast[idx] += vol
		}
	}
	return total
}

// monthsApart meses calendario completos entre el primer día del mes start y t.
func monthsApart(start, t time.Time) int {
	t = t.UTC()
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}

// monthLabel etiqueta corta del mes en español, ej: "Ene 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Ene", "Feb", "Mar", "Abr", "May", "Jun",
		"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// SortedCategories devuelve los nombres de categoría en orden alfabético,
// para salidas donde el orden de iteración del mapa sería visible (reportes, PDF).
func (s *AggregateSnapshot) SortedCategories() []string {
	names := make([]string, 0, len(s.StockDistribution))
	for name := range s.StockDistribution {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
