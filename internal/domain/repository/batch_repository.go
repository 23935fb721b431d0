package repository

import (
	"context"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para InventoryBatch (DIP).
//
// El motor de vencimientos no conoce este puerto: la capa de aplicación le
// entrega snapshots ya cargados. Los métodos de lectura devuelven los lotes
// tal cual están en la DB, sin clasificar.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.InventoryBatch) error
	GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error)
	// ListAll devuelve el universo completo de lotes (snapshot para el motor).
	ListAll(ctx context.Context) ([]entity.InventoryBatch, error)
	// Search busca por nombre de producto, número de lote o categoría (ILIKE).
	Search(ctx context.Context, keyword string) ([]entity.InventoryBatch, error)
	Update(ctx context.Context, batch *entity.InventoryBatch) error
	Delete(ctx context.Context, id string) error
}
