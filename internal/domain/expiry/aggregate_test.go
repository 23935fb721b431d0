package expiry_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// ──────────────────────────────────────────────────────────────────────────────
// BuildAggregate — sumas, conteos y pronóstico
// ──────────────────────────────────────────────────────────────────────────────

// TestBuildAggregate_EjemploCanonico ejemplo de referencia del motor:
// tres lotes (5d, -1d, 45d) ⇒ stock 35, valor 55.00, 1 vencido, 1 por vencer,
// FEFO prioridad = [vencido, por vencer].
func TestBuildAggregate_EjemploCanonico(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(-1)),
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
	})

	snap, err := expiry.BuildAggregate(classified, hoy, expiry.DefaultForecastMonths)
	require.NoError(t, err)

	assert.Equal(t, int64(35), snap.TotalStock)
	assert.True(t, snap.InventoryValue.Equal(decimal.RequireFromString("55.00")),
		"valor esperado 55.00, obtenido %s", snap.InventoryValue)
	assert.Equal(t, int64(1), snap.ExpiredCount)
	assert.Equal(t, int64(1), snap.NearExpiryCount)
	assert.Equal(t, expiry.SystemStatusCritical, snap.SystemStatus)

	require.Len(t, snap.FEFOList, 2)
	assert.Equal(t, "L2", snap.FEFOList[0].ID)
	assert.Equal(t, "L1", snap.FEFOList[1].ID)
}

// TestBuildAggregate_DistribucionPorCategoria la distribución usa suma de
// cantidades por categoría (consistente con TotalStock), más valor acumulado.
func TestBuildAggregate_DistribucionPorCategoria(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(40)),
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
	})

	snap, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)

	require.Len(t, snap.StockDistribution, 2)
	assert.Equal(t, int64(15), snap.StockDistribution["Alimentos"].Count)
	assert.True(t, snap.StockDistribution["Alimentos"].Value.Equal(decimal.RequireFromString("35.00")))
	assert.Equal(t, int64(20), snap.StockDistribution["Medicinas"].Count)
	assert.Equal(t, []string{"Alimentos", "Medicinas"}, snap.SortedCategories())
}

// TestBuildAggregate_PronosticoSinHuecos el pronóstico tiene exactamente N
// entradas cronológicas desde el mes de hoy, con ceros en meses sin lotes.
func TestBuildAggregate_PronosticoSinHuecos(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),   // mes 0 (marzo)
		lote("L2", "B-002", "Alimentos", 7, "1.00", fecha(75)),   // mes 2 (mayo)
		lote("L3", "B-003", "Medicinas", 4, "1.00", fecha(80)),   // mes 3 (3 de junio)
		lote("L4", "B-004", "Medicinas", 9, "1.00", fecha(-10)),  // vencido: fuera del pronóstico
		lote("L5", "B-005", "Alimentos", 3, "1.00", fecha(200)),  // fuera de la ventana de 6 meses
	})

	snap, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)

	require.Len(t, snap.ExpiryForecast, 6)
	assert.Equal(t, "Mar 2026", snap.ExpiryForecast[0].Label)
	assert.Equal(t, "Ago 2026", snap.ExpiryForecast[5].Label)

	// Cronológico y sin huecos
	for i := 0; i < 5; i++ {
		assert.True(t, snap.ExpiryForecast[i].Month.Before(snap.ExpiryForecast[i+1].Month))
	}

	// hoy = 15 mar; +5d = 20 mar (mes 0); +75d = 29 may (mes 2); +80d = 3 jun (mes 3)
	assert.Equal(t, int64(10), snap.ExpiryForecast[0].ExpiryVolume)
	assert.Equal(t, int64(0), snap.ExpiryForecast[1].ExpiryVolume, "abril sin lotes queda en cero")
	assert.Equal(t, int64(7), snap.ExpiryForecast[2].ExpiryVolume)
	assert.Equal(t, int64(4), snap.ExpiryForecast[3].ExpiryVolume)

	// El vencido no entra al pronóstico pero sí al contador
	assert.Equal(t, int64(1), snap.ExpiredCount)
}

// TestBuildAggregate_MesesConfigurables el horizonte es configurable y la
// longitud de la serie siempre coincide con él.
func TestBuildAggregate_MesesConfigurables(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
	})

	for _, n := range []int{1, 3, 12} {
		snap, err := expiry.BuildAggregate(classified, hoy, n)
		require.NoError(t, err)
		assert.Len(t, snap.ExpiryForecast, n)
	}
}

// TestBuildAggregate_MesesInvalidos_ErrorInmediato horizonte no positivo es
// error de configuración, sin resultado parcial.
func TestBuildAggregate_MesesInvalidos_ErrorInmediato(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
	})

	for _, n := range []int{0, -1, -6} {
		snap, err := expiry.BuildAggregate(classified, hoy, n)
		require.Error(t, err)
		assert.ErrorIs(t, err, expiry.ErrForecastMonths)
		assert.Nil(t, snap)
	}
}

// TestBuildAggregate_IndependienteDelOrden sumas y conteos no dependen del
// orden de entrada, y la lista FEFO sale igual.
func TestBuildAggregate_IndependienteDelOrden(t *testing.T) {
	directo := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(-1)),
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
	})
	invertido := clasificar(t, []entity.InventoryBatch{
		lote("L3", "B-003", "Medicinas", 20, "1.00", fecha(45)),
		lote("L2", "B-002", "Alimentos", 5, "3.00", fecha(-1)),
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
	})

	a, err := expiry.BuildAggregate(directo, hoy, 6)
	require.NoError(t, err)
	b, err := expiry.BuildAggregate(invertido, hoy, 6)
	require.NoError(t, err)

	assert.Equal(t, a.TotalStock, b.TotalStock)
	assert.True(t, a.InventoryValue.Equal(b.InventoryValue))
	assert.Equal(t, a.StockDistribution, b.StockDistribution)
	assert.Equal(t, a.ExpiryForecast, b.ExpiryForecast)
	assert.Equal(t, a.FEFOList, b.FEFOList)
}

// TestBuildAggregate_Determinista mismo input ⇒ snapshot idéntico en cada llamada.
func TestBuildAggregate_Determinista(t *testing.T) {
	classified := clasificar(t, []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Medicinas", 5, "3.00", fecha(-1)),
	})

	a, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)
	b, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// TestBuildAggregate_ColeccionGrande_FoldParalelo con decenas de miles de
// lotes el fold se particiona entre goroutines; las sumas deben coincidir con
// el cálculo cerrado. También cubre que no haya desborde en los totales.
func TestBuildAggregate_ColeccionGrande_FoldParalelo(t *testing.T) {
	const n = 20000
	batches := make([]entity.InventoryBatch, 0, n)
	for i := 0; i < n; i++ {
		// cantidades 1..5, precio 1.50, vencimientos repartidos en ±100 días
		qty := int64(i%5) + 1
		batches = append(batches, lote(
			fmt.Sprintf("L%05d", i),
			fmt.Sprintf("B-%05d", i),
			fmt.Sprintf("Cat-%d", i%4),
			qty, "1.50", fecha(i%200-100),
		))
	}
	classified := clasificar(t, batches)

	snap, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)

	// Σ qty: 20000/5 grupos completos de (1+2+3+4+5)=15 ⇒ 4000×15 = 60000
	assert.Equal(t, int64(60000), snap.TotalStock)
	assert.True(t, snap.InventoryValue.Equal(decimal.NewFromInt(60000).Mul(decimal.RequireFromString("1.50"))))

	// Conteos por estado calculados de forma independiente
	var expirados, porVencer int64
	for _, cb := range classified {
		switch cb.Status {
		case expiry.StatusExpired:
			expirados++
		case expiry.StatusNearExpiry:
			porVencer++
		}
	}
	assert.Equal(t, expirados, snap.ExpiredCount)
	assert.Equal(t, porVencer, snap.NearExpiryCount)

	// La distribución sigue sumando el total
	var distTotal int64
	for _, cat := range snap.StockDistribution {
		distTotal += cat.Count
	}
	assert.Equal(t, snap.TotalStock, distTotal)

	// Determinismo también en el camino paralelo
	again, err := expiry.BuildAggregate(classified, hoy, 6)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}
