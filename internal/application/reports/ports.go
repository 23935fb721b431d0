package reports

import "github.com/jhoicas/SmartTrack-api/internal/application/dto"

// ReportPDFGenerator puerto de generación del PDF del reporte (implementado
// en infrastructure/pdf con Maroto).
type ReportPDFGenerator interface {
	GenerateReportPDF(report *dto.ReportDTO, title string) ([]byte, error)
}
