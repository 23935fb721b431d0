package repository

import (
	"context"
	"time"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
)

// WasteEventRepository define el puerto del feed de mermas y salvamentos.
// Alimenta la serie de tendencia de los reportes; el motor lo recibe como
// slice ya cargado, nunca consulta directamente.
type WasteEventRepository interface {
	Create(ctx context.Context, event *entity.WasteEvent) error
	// ListBetween eventos con fecha dentro de [from, to] inclusivo.
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.WasteEvent, error)
}
