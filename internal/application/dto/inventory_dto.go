package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// DateLayout formato de fecha calendario en requests y respuestas (ISO-8601, sin hora).
const DateLayout = "2006-01-02"

// BatchRequest body para crear o actualizar un lote. Las fechas viajan como
// "YYYY-MM-DD"; expiry_date es obligatoria y se valida antes de tocar el motor.
type BatchRequest struct {
	ProductID         string          `json:"product_id" validate:"required"`
	ProductName       string          `json:"product_name" validate:"required,max=200"`
	CategoryName      string          `json:"category_name" validate:"required,max=100"`
	BatchNumber       string          `json:"batch_number" validate:"required,max=100"`
	Quantity          int64           `json:"quantity" validate:"min=0"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	ManufacturingDate string          `json:"manufacturing_date,omitempty"` // opcional
	ExpiryDate        string          `json:"expiry_date" validate:"required"`
	StorageLocation   string          `json:"storage_location,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// BatchDTO lote clasificado tal como lo consume el dashboard y la lista de
// inventario: entidad + estado y días restantes derivados.
type BatchDTO struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	CategoryName      string          `json:"category_name"`
	BatchNumber       string          `json:"batch_number"`
	Quantity          int64           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	ManufacturingDate string          `json:"manufacturing_date,omitempty"`
	ExpiryDate        string          `json:"expiry_date"`
	Status            string          `json:"status"`
	DaysUntilExpiry   int             `json:"days_until_expiry"`
	StorageLocation   string          `json:"storage_location,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// BatchListResponse listado clasificado más los lotes rechazados (skip-and-report).
type BatchListResponse struct {
	Total    int                    `json:"total"`
	Batches  []BatchDTO             `json:"batches"`
	Rejected []expiry.RejectedBatch `json:"rejected,omitempty"`
}

// FromClassifiedBatch mapea la vista derivada del motor al DTO de salida.
func FromClassifiedBatch(cb expiry.ClassifiedBatch) BatchDTO {
	dto := BatchDTO{
		ID:              cb.ID,
		ProductID:       cb.ProductID,
		ProductName:     cb.ProductName,
		CategoryName:    cb.CategoryName,
		BatchNumber:     cb.BatchNumber,
		Quantity:        cb.Quantity,
		UnitPrice:       cb.UnitPrice,
		ExpiryDate:      cb.ExpiryDate.Format(DateLayout),
		Status:          string(cb.Status),
		DaysUntilExpiry: cb.DaysUntilExpiry,
		StorageLocation: cb.StorageLocation,
		Notes:           cb.Notes,
	}
	if cb.ManufacturingDate != nil {
		dto.ManufacturingDate = cb.ManufacturingDate.Format(DateLayout)
	}
	return dto
}

// FromClassifiedBatches mapea una colección completa preservando el orden.
func FromClassifiedBatches(cbs []expiry.ClassifiedBatch) []BatchDTO {
	out := make([]BatchDTO, 0, len(cbs))
	for _, cb := range cbs {
		out = append(out, FromClassifiedBatch(cb))
	}
	return out
}

// ParseDate parsea una fecha "YYYY-MM-DD" a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
