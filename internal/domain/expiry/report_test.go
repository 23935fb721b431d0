package expiry_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// evento construye un WasteEvent del feed externo de mermas.
func evento(tipo string, valor string, cuando time.Time) entity.WasteEvent {
	return entity.WasteEvent{
		ID:       "ev-" + tipo + cuando.Format("20060102"),
		BatchID:  "L1",
		Type:     tipo,
		Quantity: 1,
		Value:    decimal.RequireFromString(valor),
		Date:     cuando,
	}
}

// TestProjectReport_RollupPorCategoria sin filtros: todo el universo, rollup
// monetario por categoría en orden alfabético.
func TestProjectReport_RollupPorCategoria(t *testing.T) {
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Medicinas", 5, "3.00", fecha(-1)),
		lote("L3", "B-003", "Alimentos", 20, "1.00", fecha(45)),
	}

	rollup, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{}, hoy)
	require.NoError(t, err)

	require.Len(t, rollup.Categories, 2)
	assert.Equal(t, "Alimentos", rollup.Categories[0].Category)
	assert.True(t, rollup.Categories[0].InventoryValue.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, int64(30), rollup.Categories[0].Quantity)
	assert.Equal(t, "Medicinas", rollup.Categories[1].Category)
	assert.True(t, rollup.Categories[1].InventoryValue.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, rollup.TotalValue.Equal(decimal.RequireFromString("55.00")))
}

// TestProjectReport_FiltroDeCategoria "ALL" (en cualquier capitalización) y
// vacío significan todas; cualquier otro valor restringe por igualdad.
func TestProjectReport_FiltroDeCategoria(t *testing.T) {
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Medicinas", 5, "3.00", fecha(10)),
	}

	todas, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{Category: "all"}, hoy)
	require.NoError(t, err)
	assert.Len(t, todas.Categories, 2)

	solo, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{Category: "Medicinas"}, hoy)
	require.NoError(t, err)
	require.Len(t, solo.Categories, 1)
	assert.Equal(t, "Medicinas", solo.Categories[0].Category)
	assert.True(t, solo.TotalValue.Equal(decimal.RequireFromString("15.00")))
}

// TestProjectReport_VentanaInclusiva ambos extremos del rango incluyen.
func TestProjectReport_VentanaInclusiva(t *testing.T) {
	desde := hoy.AddDate(0, 0, 5)
	hasta := hoy.AddDate(0, 0, 10)
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 1, "1.00", fecha(4)),  // fuera (antes)
		lote("L2", "B-002", "Alimentos", 2, "1.00", fecha(5)),  // frontera inferior
		lote("L3", "B-003", "Alimentos", 3, "1.00", fecha(10)), // frontera superior
		lote("L4", "B-004", "Alimentos", 4, "1.00", fecha(11)), // fuera (después)
	}

	rollup, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{From: &desde, To: &hasta}, hoy)
	require.NoError(t, err)

	require.Len(t, rollup.Categories, 1)
	assert.Equal(t, int64(5), rollup.Categories[0].Quantity, "solo L2 y L3 entran a la ventana")
}

// TestProjectReport_CotasAbiertas un solo extremo acota; el otro queda libre.
func TestProjectReport_CotasAbiertas(t *testing.T) {
	corte := hoy.AddDate(0, 0, 10)
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 1, "1.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 2, "1.00", fecha(20)),
	}

	soloHasta, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{To: &corte}, hoy)
	require.NoError(t, err)
	assert.Equal(t, int64(1), soloHasta.Categories[0].Quantity)

	soloDesde, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{From: &corte}, hoy)
	require.NoError(t, err)
	assert.Equal(t, int64(2), soloDesde.Categories[0].Quantity)
}

// TestProjectReport_RangoInvalido from > to es error inmediato, sin parciales.
func TestProjectReport_RangoInvalido(t *testing.T) {
	desde := hoy.AddDate(0, 0, 10)
	hasta := hoy.AddDate(0, 0, 5)

	rollup, err := expiry.ProjectReport(nil, nil, expiry.ReportFilter{From: &desde, To: &hasta}, hoy)

	require.Error(t, err)
	assert.ErrorIs(t, err, expiry.ErrInvalidRange)
	assert.Nil(t, rollup)
}

// TestProjectReport_MismaClasificacionQueElMotor el filtro de reporte no
// reclasifica: un lote inválido sigue saliendo como rechazado.
func TestProjectReport_MismaClasificacionQueElMotor(t *testing.T) {
	batches := []entity.InventoryBatch{
		lote("L1", "B-001", "Alimentos", 10, "2.00", fecha(5)),
		lote("L2", "B-002", "Alimentos", 3, "1.00", nil),
	}

	rollup, err := expiry.ProjectReport(batches, nil, expiry.ReportFilter{}, hoy)
	require.NoError(t, err)

	require.Len(t, rollup.Rejected, 1)
	assert.Equal(t, "L2", rollup.Rejected[0].BatchID)
	// El rechazado no aporta al rollup
	assert.True(t, rollup.TotalValue.Equal(decimal.RequireFromString("20.00")))
}

// TestProjectReport_TendenciaPorMes los eventos SAVED/LOSS se agrupan por mes
// calendario dentro de la ventana, con meses vacíos en cero.
func TestProjectReport_TendenciaPorMes(t *testing.T) {
	desde := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	events := []entity.WasteEvent{
		evento(entity.WasteEventSAVED, "240.00", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		evento(entity.WasteEventLOSS, "120.00", time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC)),
		evento(entity.WasteEventSAVED, "180.00", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		// fuera de la ventana: no debe aparecer
		evento(entity.WasteEventLOSS, "999.00", time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)),
	}

	rollup, err := expiry.ProjectReport(nil, events, expiry.ReportFilter{From: &desde, To: &hasta}, hoy)
	require.NoError(t, err)

	require.Len(t, rollup.Trend, 3)
	assert.Equal(t, "Ene 2026", rollup.Trend[0].Label)
	assert.True(t, rollup.Trend[0].ValueSaved.Equal(decimal.RequireFromString("240.00")))
	assert.True(t, rollup.Trend[0].WastageLoss.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, rollup.Trend[1].ValueSaved.IsZero(), "febrero sin eventos queda en cero")
	assert.True(t, rollup.Trend[1].WastageLoss.IsZero())
	assert.True(t, rollup.Trend[2].ValueSaved.Equal(decimal.RequireFromString("180.00")))
}

// TestProjectReport_TendenciaSinVentana_UltimosSeisMeses sin rango explícito la
// serie cubre los últimos 6 meses terminando en el mes de hoy.
func TestProjectReport_TendenciaSinVentana_UltimosSeisMeses(t *testing.T) {
	rollup, err := expiry.ProjectReport(nil, nil, expiry.ReportFilter{}, hoy)
	require.NoError(t, err)

	require.Len(t, rollup.Trend, 6)
	assert.Equal(t, "Oct 2025", rollup.Trend[0].Label)
	assert.Equal(t, "Mar 2026", rollup.Trend[5].Label)
}
