package expiry_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// clasificar helper: clasifica sin lotes inválidos (falla el test si hay rechazos).
func clasificar(t *testing.T, batches []entity.InventoryBatch) []expiry.ClassifiedBatch {
	t.Helper()
	classified, rejected := expiry.ClassifyBatches(batches, hoy)
	require.Empty(t, rejected, "los lotes de este test deben ser válidos")
	return classified
}

// TestRankFEFO_ModoPrioridad solo entran lotes NEAR_EXPIRY y EXPIRED,
// ordenados por vencimiento ascendente (el vencido primero).
func TestRankFEFO_ModoPrioridad(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(-1)),
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
	})

	ranked := expiry.RankFEFO(classified, expiry.RankPriority)

	require.Len(t, ranked, 2)
	assert.Equal(t, "L2", ranked[0].ID, "el vencido va primero")
	assert.Equal(t, "L1", ranked[1].ID)
}

// TestRankFEFO_ModoCompleto el catálogo entero entra al ranking, incluidos los GOOD.
func TestRankFEFO_ModoCompleto(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(-1)),
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
	})

	ranked := expiry.RankFEFO(classified, expiry.RankFull)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"L2", "L1", "L3"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

// TestRankFEFO_DesempatePorNumeroDeLoteYLuegoID vencimientos idénticos se
// desempatan por número de lote (lexicográfico) y en último caso por ID.
func TestRankFEFO_DesempatePorNumeroDeLoteYLuegoID(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L3", "B-020", "Alimentos", 1, "1.00", fecha(3)),
		lote("L2", "B-010", "Alimentos", 1, "1.00", fecha(3)),
		// mismo vencimiento y mismo número de lote: no debe romper, desempata por ID
		lote("L9", "B-010", "Alimentos", 1, "1.00", fecha(3)),
	})

	ranked := expiry.RankFEFO(classified, expiry.RankPriority)

	require.Len(t, ranked, 3)
	assert.Equal(t, "L2", ranked[0].ID)
	assert.Equal(t, "L9", ranked[1].ID)
	assert.Equal(t, "L3", ranked[2].ID)
}

// TestRankFEFO_IncluyeCantidadCero los lotes con cantidad cero permanecen en
// la lista (stock pendiente de conciliación de descarte); filtrarlos es
// decisión del caller, no del motor.
func TestRankFEFO_IncluyeCantidadCero(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 0, "2.00", fecha(2)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(10)),
	})

	ranked := expiry.RankFEFO(classified, expiry.RankPriority)

	require.Len(t, ranked, 2)
	assert.Equal(t, "L1", ranked[0].ID)
	assert.Equal(t, int64(0), ranked[0].Quantity)
}

// TestRankFEFO_OrdenTotalEInvarianteAlBarajado el orden resultante es total y
// estable: barajar la entrada no cambia la salida, y re-rankear una lista ya
// ordenada la deja idéntica (idempotencia).
func TestRankFEFO_OrdenTotalEInvarianteAlBarajado(t *testing.T) {
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(1)),
		lote("L2", "B-002", "Medicinas", 5, "3.00", fecha(-3)),
		lote("L3", "B-003", "Alimentos", 7, "1.50", fecha(15)),
		lote("L4", "B-004", "Cosméticos", 2, "9.00", fecha(15)),
		lote("L5", "B-005", "Alimentos", 9, "4.00", fecha(0)),
	}
	classified := clasificar(t, batches)
	base := expiry.RankFEFO(classified, expiry.RankFull)

	// Orden total: vencimientos no decrecientes en pares adyacentes
	for i := 0; i < len(base)-1; i++ {
		assert.False(t, base[i].ExpiryDate.After(*base[i+1].ExpiryDate),
			"expiryDate[%d] debe ser <= expiryDate[%d]", i, i+1)
	}

	// Barajado reproducible: la salida no depende del orden de entrada
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 10; iter++ {
		shuffled := make([]expiry.ClassifiedBatch, len(classified))
		copy(shuffled, classified)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		again := expiry.RankFEFO(shuffled, expiry.RankFull)
		assert.Equal(t, base, again)
	}

	// Idempotencia: re-rankear lo ya rankeado
	assert.Equal(t, base, expiry.RankFEFO(base, expiry.RankFull))
}

// TestRankFEFO_NoMutaLaEntrada la entrada queda intacta (vista de solo lectura).
func TestRankFEFO_NoMutaLaEntrada(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(20)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(1)),
	})
	copia := make([]expiry.ClassifiedBatch, len(classified))
	copy(copia, classified)

	_ = expiry.RankFEFO(classified, expiry.RankPriority)

	assert.Equal(t, copia, classified)
}
