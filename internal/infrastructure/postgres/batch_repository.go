package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, product_id, product_name, category_name, batch_number, quantity, unit_price,
		manufacturing_date, expiry_date, storage_location, notes, created_at, updated_at`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un nuevo lote.
// Devuelve domain.ErrDuplicate si ya existe un lote con el mismo batch_number para el producto.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (id, product_id, product_name, category_name, batch_number, quantity, unit_price, manufacturing_date, expiry_date, storage_location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductID, batch.ProductName, batch.CategoryName, batch.BatchNumber,
		batch.Quantity, batch.UnitPrice, batch.ManufacturingDate, batch.ExpiryDate,
		batch.StorageLocation, batch.Notes, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	var b entity.InventoryBatch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ProductID, &b.ProductName, &b.CategoryName, &b.BatchNumber,
		&b.Quantity, &b.UnitPrice, &b.ManufacturingDate, &b.ExpiryDate,
		&b.StorageLocation, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListAll devuelve el snapshot completo de lotes, ordenado por fecha de vencimiento.
// Los NULL van al final: son los lotes que el motor rechaza como inválidos.
func (r *BatchRepo) ListAll(ctx context.Context) ([]entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches ORDER BY expiry_date ASC NULLS LAST, batch_number ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// Search busca por nombre de producto, número de lote o categoría (ILIKE).
func (r *BatchRepo) Search(ctx context.Context, keyword string) ([]entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_name ILIKE $1 OR batch_number ILIKE $1 OR category_name ILIKE $1
		ORDER BY expiry_date ASC NULLS LAST, batch_number ASC`
	rows, err := r.q.Query(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("search batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// Update actualiza un lote existente. BatchNumber es inmutable tras la creación.
// Devuelve domain.ErrNotFound si el ID no existe.
func (r *BatchRepo) Update(ctx context.Context, batch *entity.InventoryBatch) error {
	query := `
		UPDATE inventory_batches
		SET product_name = $2, category_name = $3, quantity = $4, unit_price = $5,
			manufacturing_date = $6, expiry_date = $7, storage_location = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductName, batch.CategoryName, batch.Quantity, batch.UnitPrice,
		batch.ManufacturingDate, batch.ExpiryDate, batch.StorageLocation, batch.Notes, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote por ID. Devuelve domain.ErrNotFound si no existe.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBatches(rows pgx.Rows) ([]entity.InventoryBatch, error) {
	var list []entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.ProductName, &b.CategoryName, &b.BatchNumber,
			&b.Quantity, &b.UnitPrice, &b.ManufacturingDate, &b.ExpiryDate,
			&b.StorageLocation, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
