package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de merma / salvamento.
const (
	WasteEventSAVED = "SAVED" // stock vendido o donado antes de vencer
	WasteEventLOSS  = "LOSS"  // stock desechado por vencimiento
)

// WasteEvent registra la disposición final de unidades de un lote:
// valor recuperado (SAVED) o pérdida por vencimiento (LOSS).
// Es un feed externo al motor de vencimientos; solo lo consume la
// serie de tendencia de los reportes.
type WasteEvent struct {
	ID        string
	BatchID   string
	Type      string // SAVED | LOSS
	Quantity  int64
	Value     decimal.Decimal // cantidad × precio unitario al momento del evento
	Date      time.Time
	CreatedAt time.Time
}
