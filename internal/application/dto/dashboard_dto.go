package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
// Es la proyección presentable de un expiry.AggregateSnapshot: mismos números,
// más el color por categoría (asunto de presentación, el motor no lo conoce).
type DashboardOverviewDTO struct {
	TotalStock      int64           `json:"total_stock"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	NearExpiryCount int64           `json:"near_expiry_count"`
	ExpiredCount    int64           `json:"expired_count"`
	SystemStatus    string          `json:"system_status"` // HEALTHY | WARNING | CRITICAL

	ExpiryForecast    []ForecastBucketDTO             `json:"expiry_forecast"`
	StockDistribution map[string]StockDistributionDTO `json:"stock_distribution"`
	FEFOList          []BatchDTO                      `json:"fefo_list"`

	Rejected []expiry.RejectedBatch `json:"rejected,omitempty"`
}

// ForecastBucketDTO volumen de vencimiento de un mes del pronóstico.
type ForecastBucketDTO struct {
	Month        string `json:"month"` // ej: "Ene 2026"
	ExpiryVolume int64  `json:"expiry_volume"`
}

// StockDistributionDTO acumulado de una categoría para el gráfico de dona.
type StockDistributionDTO struct {
	Count int64           `json:"count"` // suma de cantidades (consistente con total_stock)
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"` // paleta determinista, ver CategoryColor
}

// FromAggregateSnapshot proyecta el snapshot del motor al DTO del dashboard,
// redondeando montos a 2 decimales y asignando colores de presentación.
func FromAggregateSnapshot(snap *expiry.AggregateSnapshot, rejected []expiry.RejectedBatch) *DashboardOverviewDTO {
	forecast := make([]ForecastBucketDTO, 0, len(snap.ExpiryForecast))
	for _, b := range snap.ExpiryForecast {
		forecast = append(forecast, ForecastBucketDTO{Month: b.Label, ExpiryVolume: b.ExpiryVolume})
	}

	distribution := make(map[string]StockDistributionDTO, len(snap.StockDistribution))
	for name, cat := range snap.StockDistribution {
		distribution[name] = StockDistributionDTO{
			Count: cat.Count,
			Value: cat.Value.Round(2),
			Color: CategoryColor(name),
		}
	}

	return &DashboardOverviewDTO{
		TotalStock:        snap.TotalStock,
		InventoryValue:    snap.InventoryValue.Round(2),
		NearExpiryCount:   snap.NearExpiryCount,
		ExpiredCount:      snap.ExpiredCount,
		SystemStatus:      snap.SystemStatus,
		ExpiryForecast:    forecast,
		StockDistribution: distribution,
		FEFOList:          FromClassifiedBatches(snap.FEFOList),
		Rejected:          rejected,
	}
}
