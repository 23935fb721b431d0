package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch representa un lote de inventario perecedero: unidades de un
// producto que comparten fecha de fabricación, fecha de vencimiento y número de lote.
//
// El motor de vencimientos (internal/domain/expiry) solo LEE esta entidad;
// altas, bajas y ajustes de cantidad son responsabilidad de la capa de aplicación.
type InventoryBatch struct {
	ID           string
	ProductID    string
	ProductName  string
	CategoryName string
	BatchNumber  string // único por producto, inmutable tras la creación

	Quantity  int64           // unidades físicas, nunca negativo
	UnitPrice decimal.Decimal // precio unitario (NUMERIC en DB, nunca float)

	ManufacturingDate *time.Time // opcional
	ExpiryDate        *time.Time // obligatorio; nil = lote inválido para el motor

	StorageLocation string
	Notes           string

	CreatedAt time.Time
	UpdatedAt time.Time
}
