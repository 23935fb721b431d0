// seed puebla la base de datos con datos de demostración: un usuario admin,
// lotes de inventario en los tres estados (vigente, próximo a vencer, vencido)
// y un feed de mermas de los últimos meses.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/SmartTrack-api/pkg/config"
)

type seedBatch struct {
	product   string
	category  string
	number    string
	quantity  int64
	price     string
	expiresIn int // días desde hoy; negativo = ya vencido
	location  string
}

var demoBatches = []seedBatch{
	{"Leche entera 1L", "Lácteos", "LOT-2026-001", 120, "1.50", 5, "Cámara fría A"},
	{"Yogur natural", "Lácteos", "LOT-2026-002", 80, "0.90", 12, "Cámara fría A"},
	{"Queso fresco 500g", "Lácteos", "LOT-2026-003", 35, "4.20", 45, "Cámara fría B"},
	{"Pan de molde", "Panadería", "LOT-2026-010", 60, "2.10", 2, "Estante 3"},
	{"Manzanas Gala kg", "Frutas", "LOT-2026-020", 200, "1.80", 20, "Bodega 1"},
	{"Amoxicilina 500mg", "Medicinas", "LOT-2025-900", 50, "8.75", -10, "Farmacia"},
	{"Ibuprofeno 400mg", "Medicinas", "LOT-2026-030", 150, "3.40", 180, "Farmacia"},
	{"Jugo de naranja 1L", "Bebidas", "LOT-2025-910", 40, "2.60", -3, "Estante 7"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	wasteRepo := postgres.NewWasteEventRepository(pool)

	now := time.Now().UTC()

	// Usuario admin de demo (idempotente: se salta si ya existe)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@smarttrack.local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch err := userRepo.Create(admin); err {
	case nil:
		fmt.Printf("usuario admin creado: %s\n", admin.Email)
	case domain.ErrEmailAlreadyExists:
		fmt.Printf("usuario admin ya existe: %s\n", admin.Email)
	default:
		fail("crear usuario admin: %v", err)
	}

	// Lotes de demostración
	var firstBatchID string
	for _, s := range demoBatches {
		expiry := now.AddDate(0, 0, s.expiresIn)
		mfg := expiry.AddDate(0, -6, 0)
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			fail("precio inválido %q: %v", s.price, err)
		}
		b := &entity.InventoryBatch{
			ID:                uuid.New().String(),
			ProductID:         uuid.New().String(),
			ProductName:       s.product,
			CategoryName:      s.category,
			BatchNumber:       s.number,
			Quantity:          s.quantity,
			UnitPrice:         price,
			ManufacturingDate: &mfg,
			ExpiryDate:        &expiry,
			StorageLocation:   s.location,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		switch err := batchRepo.Create(ctx, b); err {
		case nil:
			if firstBatchID == "" {
				firstBatchID = b.ID
			}
			fmt.Printf("lote %s (%s) creado\n", s.number, s.product)
		case domain.ErrDuplicate:
			fmt.Printf("lote %s ya existe, se omite\n", s.number)
		default:
			fail("crear lote %s: %v", s.number, err)
		}
	}

	// Feed de mermas: alterna SAVED y LOSS en los últimos 4 meses
	if firstBatchID != "" {
		for i := 1; i <= 4; i++ {
			eventType := entity.WasteEventSAVED
			value := decimal.NewFromFloat(35.50)
			if i%2 == 0 {
				eventType = entity.WasteEventLOSS
				value = decimal.NewFromFloat(12.80)
			}
			ev := &entity.WasteEvent{
				ID:        uuid.New().String(),
				BatchID:   firstBatchID,
				Type:      eventType,
				Quantity:  10,
				Value:     value,
				Date:      now.AddDate(0, -i, 0),
				CreatedAt: now,
			}
			if err := wasteRepo.Create(ctx, ev); err != nil && err != domain.ErrDuplicate {
				fail("crear evento de merma: %v", err)
			}
		}
		fmt.Println("feed de mermas sembrado (4 meses)")
	}

	fmt.Println("seed completado")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
