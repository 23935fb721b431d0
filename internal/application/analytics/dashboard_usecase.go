// Package analytics contiene el caso de uso del Dashboard de vencimientos:
// el resumen agregado (stock, valor, contadores, pronóstico, lista FEFO) que
// consume la pantalla principal.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/SmartTrack-api/internal/application/dto"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
	"github.com/jhoicas/SmartTrack-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del dashboard a partir de un snapshot
// completo del inventario.
//
// Toda la aritmética vive en el motor expiry; aquí solo se captura el reloj
// (una vez por petición), se clasifica y se proyecta el DTO.
type DashboardUseCase struct {
	batchRepo      repository.BatchRepository
	clock          expiry.Clock
	forecastMonths int
}

// NewDashboardUseCase construye el caso de uso. forecastMonths <= 0 toma el
// default del motor (6 meses).
func NewDashboardUseCase(batchRepo repository.BatchRepository, clock expiry.Clock, forecastMonths int) *DashboardUseCase {
	if forecastMonths <= 0 {
		forecastMonths = expiry.DefaultForecastMonths
	}
	return &DashboardUseCase{batchRepo: batchRepo, clock: clock, forecastMonths: forecastMonths}
}

// GetOverview construye el DashboardOverviewDTO.
//
// La clasificación corre exactamente UNA vez por lote y alimenta tanto los
// contadores como la lista FEFO del snapshot; no hay relecturas del reloj a
// mitad de cómputo.
func (uc *DashboardUseCase) GetOverview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: cargar inventario: %w", err)
	}

	today := uc.clock.Today()
	classified, rejected := expiry.ClassifyBatches(batches, today)

	snap, err := expiry.BuildAggregate(classified, today, uc.forecastMonths)
	if err != nil {
		return nil, fmt.Errorf("dashboard: agregar: %w", err)
	}

	return dto.FromAggregateSnapshot(snap, rejected), nil
}
