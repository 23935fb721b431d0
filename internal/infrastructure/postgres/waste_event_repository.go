package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/repository"
)

var _ repository.WasteEventRepository = (*WasteEventRepo)(nil)

// WasteEventRepo implementación del feed de mermas sobre PostgreSQL.
type WasteEventRepo struct {
	q Querier
}

// NewWasteEventRepository construye el adaptador del feed de mermas. Pasar pool o tx (Querier).
func NewWasteEventRepository(q Querier) *WasteEventRepo {
	return &WasteEventRepo{q: q}
}

// Create registra un evento de merma o salvamento.
func (r *WasteEventRepo) Create(ctx context.Context, event *entity.WasteEvent) error {
	query := `
		INSERT INTO waste_events (id, batch_id, type, quantity, value, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.BatchID, event.Type, event.Quantity, event.Value, event.Date, event.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert waste event: %w", err)
	}
	return nil
}

// ListBetween devuelve los eventos con fecha dentro de [from, to] inclusivo,
// ordenados cronológicamente.
func (r *WasteEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]entity.WasteEvent, error) {
	query := `
		SELECT id, batch_id, type, quantity, value, date, created_at
		FROM waste_events
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list waste events: %w", err)
	}
	defer rows.Close()
	return scanWasteEvents(rows)
}

func scanWasteEvents(rows pgx.Rows) ([]entity.WasteEvent, error) {
	var list []entity.WasteEvent
	for rows.Next() {
		var e entity.WasteEvent
		if err := rows.Scan(&e.ID, &e.BatchID, &e.Type, &e.Quantity, &e.Value, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan waste event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
