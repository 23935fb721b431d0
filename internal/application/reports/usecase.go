// Package reports contiene los casos de uso de reportes exportables: rollup
// monetario por categoría, serie de tendencia de mermas y exportación PDF.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SmartTrack-api/internal/application/dto"
	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
	"github.com/jhoicas/SmartTrack-api/internal/domain/repository"
)

// ReportUseCase proyecta reportes sobre un snapshot de lotes más el feed de
// mermas. El filtrado y los rollups son del motor; aquí se parsean los
// parámetros, se cargan los datos y se mapea el DTO.
type ReportUseCase struct {
	batchRepo repository.BatchRepository
	wasteRepo repository.WasteEventRepository
	clock     expiry.Clock
	pdfGen    ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	batchRepo repository.BatchRepository,
	wasteRepo repository.WasteEventRepository,
	clock expiry.Clock,
	pdfGen ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{batchRepo: batchRepo, wasteRepo: wasteRepo, clock: clock, pdfGen: pdfGen}
}

// GetReport arma el reporte según los filtros del request.
// from > to devuelve expiry.ErrInvalidRange sin resultado parcial.
func (uc *ReportUseCase) GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	filter, err := uc.parseFilter(req)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()

	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: cargar inventario: %w", err)
	}

	events, err := uc.loadEvents(ctx, filter, today)
	if err != nil {
		return nil, fmt.Errorf("reportes: cargar feed de mermas: %w", err)
	}

	rollup, err := expiry.ProjectReport(batches, events, filter, today)
	if err != nil {
		return nil, err
	}
	return dto.FromReportRollup(rollup), nil
}

// GetReportPDF genera el reporte y lo exporta como PDF.
func (uc *ReportUseCase) GetReportPDF(ctx context.Context, req dto.ReportRequest) ([]byte, error) {
	report, err := uc.GetReport(ctx, req)
	if err != nil {
		return nil, err
	}
	title := "Reporte de Inventario"
	if req.Category != "" && req.Category != expiry.CategoryAll {
		title = fmt.Sprintf("Reporte de Inventario — %s", req.Category)
	}
	return uc.pdfGen.GenerateReportPDF(report, title)
}

// parseFilter valida y convierte los parámetros del request.
func (uc *ReportUseCase) parseFilter(req dto.ReportRequest) (expiry.ReportFilter, error) {
	var filter expiry.ReportFilter
	filter.Category = req.Category

	if req.From != "" {
		from, err := dto.ParseDate(req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from %q no es una fecha válida (YYYY-MM-DD)", domain.ErrInvalidInput, req.From)
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := dto.ParseDate(req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to %q no es una fecha válida (YYYY-MM-DD)", domain.ErrInvalidInput, req.To)
		}
		filter.To = &to
	}
	return filter, nil
}

// loadEvents carga el feed de mermas de la ventana del filtro; sin ventana
// explícita cubre los últimos 6 meses (misma convención que la serie de
// tendencia del motor).
func (uc *ReportUseCase) loadEvents(ctx context.Context, filter expiry.ReportFilter, today time.Time) ([]entity.WasteEvent, error) {
	if uc.wasteRepo == nil {
		return nil, nil
	}
	var from, to time.Time
	if filter.From != nil && filter.To != nil {
		from, to = *filter.From, *filter.To
	} else {
		to = today
		from = today.AddDate(0, -expiry.DefaultForecastMonths, 0)
	}
	return uc.wasteRepo.ListBetween(ctx, from, to)
}
