// Package inventory contiene los casos de uso de lotes de inventario:
// altas/bajas CRUD y las consultas clasificadas (listado, próximos a vencer,
// vencidos, búsqueda, lista FEFO). La clasificación siempre se delega al motor
// de dominio; aquí solo se captura el reloj y se mapean DTOs.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/SmartTrack-api/internal/application/dto"
	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
	"github.com/jhoicas/SmartTrack-api/internal/domain/repository"
)

// BatchUseCase casos de uso sobre lotes. El repositorio entrega snapshots y
// el motor de vencimientos los clasifica; la fecha "hoy" se captura UNA vez
// por operación y se usa en toda la pasada.
type BatchUseCase struct {
	batchRepo repository.BatchRepository
	clock     expiry.Clock
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batchRepo repository.BatchRepository, clock expiry.Clock) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, clock: clock}
}

// ListAll devuelve el inventario completo clasificado, con los lotes
// inválidos reportados aparte (skip-and-report).
func (uc *BatchUseCase) ListAll(ctx context.Context) (*dto.BatchListResponse, error) {
	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar lotes: %w", err)
	}
	return uc.classifyToResponse(batches), nil
}

// NearExpiry lotes que vencen dentro de los próximos days días (0 ≤ d ≤ days).
// days <= 0 usa la ventana estándar de 30 días del motor.
func (uc *BatchUseCase) NearExpiry(ctx context.Context, days int) (*dto.BatchListResponse, error) {
	if days <= 0 {
		days = expiry.NearExpiryWindowDays
	}
	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar lotes: %w", err)
	}

	today := uc.clock.Today()
	classified, rejected := expiry.ClassifyBatches(batches, today)

	filtered := classified[:0:0]
	for _, cb := range classified {
		if cb.DaysUntilExpiry >= 0 && cb.DaysUntilExpiry <= days {
			filtered = append(filtered, cb)
		}
	}
	ranked := expiry.RankFEFO(filtered, expiry.RankFull)

	return &dto.BatchListResponse{
		Total:    len(ranked),
		Batches:  dto.FromClassifiedBatches(ranked),
		Rejected: rejected,
	}, nil
}

// Expired lotes ya vencidos, los más antiguos primero.
func (uc *BatchUseCase) Expired(ctx context.Context) (*dto.BatchListResponse, error) {
	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar lotes: %w", err)
	}

	today := uc.clock.Today()
	classified, rejected := expiry.ClassifyBatches(batches, today)

	expired := classified[:0:0]
	for _, cb := range classified {
		if cb.Status == expiry.StatusExpired {
			expired = append(expired, cb)
		}
	}
	ranked := expiry.RankFEFO(expired, expiry.RankFull)

	return &dto.BatchListResponse{
		Total:    len(ranked),
		Batches:  dto.FromClassifiedBatches(ranked),
		Rejected: rejected,
	}, nil
}

// FEFO lista "vender primero". mode: "priority" (default) o "full".
// Los lotes con cantidad cero se incluyen tal como los entrega el motor
// (stock pendiente de conciliación); este caso de uso no los filtra.
func (uc *BatchUseCase) FEFO(ctx context.Context, mode string) (*dto.BatchListResponse, error) {
	rankMode := expiry.RankPriority
	switch strings.ToLower(mode) {
	case "", "priority":
		// default
	case "full":
		rankMode = expiry.RankFull
	default:
		return nil, fmt.Errorf("%w: mode %q (se espera priority o full)", domain.ErrInvalidInput, mode)
	}

	batches, err := uc.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar lotes: %w", err)
	}

	today := uc.clock.Today()
	classified, rejected := expiry.ClassifyBatches(batches, today)
	ranked := expiry.RankFEFO(classified, rankMode)

	return &dto.BatchListResponse{
		Total:    len(ranked),
		Batches:  dto.FromClassifiedBatches(ranked),
		Rejected: rejected,
	}, nil
}

// GetByID devuelve un lote clasificado por ID.
// Un lote sin fecha de vencimiento se devuelve con error de validación en vez
// de inventarle un estado.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchDTO, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventario: obtener lote %s: %w", id, err)
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	cb, cerr := expiry.Classify(*batch, uc.clock.Today())
	if cerr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, cerr.Error())
	}
	out := dto.FromClassifiedBatch(cb)
	return &out, nil
}

// Search búsqueda por palabra clave (producto, número de lote o categoría).
func (uc *BatchUseCase) Search(ctx context.Context, keyword string) (*dto.BatchListResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword vacío", domain.ErrInvalidInput)
	}
	batches, err := uc.batchRepo.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("inventario: buscar %q: %w", keyword, err)
	}
	return uc.classifyToResponse(batches), nil
}

// Create valida y persiste un lote nuevo; devuelve el lote ya clasificado.
// El vencimiento se valida aquí, antes de que el lote exista: jamás se
// persiste un lote sin fecha de vencimiento ni se le inventa una.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.BatchRequest) (*dto.BatchDTO, error) {
	batch, err := uc.batchFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	batch.ID = uuid.New().String()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("inventario: crear lote: %w", err)
	}

	cb, err := expiry.Classify(*batch, uc.clock.Today())
	if err != nil {
		return nil, err // imposible tras la validación, pero no se traga
	}
	out := dto.FromClassifiedBatch(cb)
	return &out, nil
}

// Update reemplaza los campos mutables de un lote existente.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.BatchRequest) (*dto.BatchDTO, error) {
	existing, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	updated, err := uc.batchFromRequest(in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.batchRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("inventario: actualizar lote %s: %w", id, err)
	}

	cb, err := expiry.Classify(*updated, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	out := dto.FromClassifiedBatch(cb)
	return &out, nil
}

// Delete elimina un lote por ID.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.batchRepo.Delete(ctx, id)
}

// classifyToResponse clasifica un snapshot y arma la respuesta estándar.
func (uc *BatchUseCase) classifyToResponse(batches []entity.InventoryBatch) *dto.BatchListResponse {
	today := uc.clock.Today()
	classified, rejected := expiry.ClassifyBatches(batches, today)
	return &dto.BatchListResponse{
		Total:    len(classified),
		Batches:  dto.FromClassifiedBatches(classified),
		Rejected: rejected,
	}
}

// batchFromRequest valida el request y construye la entidad (sin ID ni fechas de auditoría).
func (uc *BatchUseCase) batchFromRequest(in dto.BatchRequest) (*entity.InventoryBatch, error) {
	if in.ProductID == "" || in.ProductName == "" || in.BatchNumber == "" {
		return nil, fmt.Errorf("%w: product_id, product_name y batch_number son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.ExpiryDate == "" {
		return nil, fmt.Errorf("%w: expiry_date es obligatoria", domain.ErrInvalidInput)
	}
	expiryDate, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date %q no es una fecha válida (YYYY-MM-DD)", domain.ErrInvalidInput, in.ExpiryDate)
	}

	batch := &entity.InventoryBatch{
		ProductID:       in.ProductID,
		ProductName:     in.ProductName,
		CategoryName:    in.CategoryName,
		BatchNumber:     in.BatchNumber,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		ExpiryDate:      &expiryDate,
		StorageLocation: in.StorageLocation,
		Notes:           in.Notes,
	}
	if in.ManufacturingDate != "" {
		mfg, err := dto.ParseDate(in.ManufacturingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: manufacturing_date %q no es una fecha válida (YYYY-MM-DD)", domain.ErrInvalidInput, in.ManufacturingDate)
		}
		if mfg.After(expiryDate) {
			return nil, fmt.Errorf("%w: manufacturing_date posterior a expiry_date", domain.ErrInvalidInput)
		}
		batch.ManufacturingDate = &mfg
	}
	return batch, nil
}
