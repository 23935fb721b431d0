// Package expiry implementa el motor de clasificación de vencimientos y
// agregación FEFO de SmartTrack: estados de frescura por lote, lista
// priorizada de venta (First-Expiry-First-Out), agregados de dashboard y
// proyecciones para reportes.
//
// Todo el paquete es puro: opera sobre snapshots en memoria que le entrega
// el caller, no tiene estado mutable compartido y es seguro de invocar en
// paralelo. La fecha de referencia ("hoy") siempre entra como parámetro.
package expiry

import (
	"fmt"
	"time"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
)

// Status estado de frescura de un lote respecto a su fecha de vencimiento.
type Status string

const (
	StatusGood       Status = "GOOD"
	StatusNearExpiry Status = "NEAR_EXPIRY"
	StatusExpired    Status = "EXPIRED"
)

// NearExpiryWindowDays umbral inclusivo de la ventana de próximo vencimiento:
// 0 ≤ días ≤ 30 → NEAR_EXPIRY.
const NearExpiryWindowDays = 30

// ClassifiedBatch vista derivada de un lote: el lote original más su estado y
// días restantes. Se recalcula en cada consulta y nunca se persiste, para que
// el estado no quede desfasado respecto al reloj.
type ClassifiedBatch struct {
	entity.InventoryBatch

	DaysUntilExpiry int    // ExpiryDate − hoy, en días completos (negativo si ya venció)
	Status          Status // función pura de (ExpiryDate, hoy)
}

// InvalidBatchError lote que no puede entrar al motor (vencimiento ausente).
// Se reporta por lote; no aborta la clasificación del resto de la colección.
type InvalidBatchError struct {
	BatchID string
	Field   string
	Reason  string
}

func (e *InvalidBatchError) Error() string {
	return fmt.Sprintf("lote %s inválido: campo %s: %s", e.BatchID, e.Field, e.Reason)
}

// RejectedBatch identificador y motivo de un lote excluido de la clasificación.
type RejectedBatch struct {
	BatchID string `json:"batch_id"`
	Reason  string `json:"reason"`
}

// StatusFor mapea días-hasta-vencimiento al estado (umbrales inclusivos):
// d < 0 → EXPIRED; 0 ≤ d ≤ 30 → NEAR_EXPIRY; d > 30 → GOOD.
func StatusFor(daysUntilExpiry int) Status {
	switch {
	case daysUntilExpiry < 0:
		return StatusExpired
	case daysUntilExpiry <= NearExpiryWindowDays:
		return StatusNearExpiry
	default:
		return StatusGood
	}
}

// Classify clasifica un lote contra la fecha de referencia today.
// Devuelve *InvalidBatchError si el lote no tiene fecha de vencimiento;
// jamás se inventa una fecha por defecto.
func Classify(b entity.InventoryBatch, today time.Time) (ClassifiedBatch, error) {
	if b.ExpiryDate == nil {
		return ClassifiedBatch{}, &InvalidBatchError{
			BatchID: b.ID,
			Field:   "expiry_date",
			Reason:  "fecha de vencimiento ausente",
		}
	}
	days := DaysBetween(today, *b.ExpiryDate)
	return ClassifiedBatch{
		InventoryBatch:  b,
		DaysUntilExpiry: days,
		Status:          StatusFor(days),
	}, nil
}

// ClassifyBatches clasifica una colección completa con política
// skip-and-report: los lotes inválidos se devuelven aparte con su motivo y el
// resto se clasifica normalmente. today debe venir ya capturado por el caller
// para que toda la pasada use el mismo reloj.
func ClassifyBatches(batches []entity.InventoryBatch, today time.Time) ([]ClassifiedBatch, []RejectedBatch) {
	classified := make([]ClassifiedBatch, 0, len(batches))
	var rejected []RejectedBatch

	for _, b := range batches {
		cb, err := Classify(b, today)
		if err != nil {
			rejected = append(rejected, RejectedBatch{BatchID: b.ID, Reason: err.Error()})
			continue
		}
		classified = append(classified, cb)
	}
	return classified, rejected
}
