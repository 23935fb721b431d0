package expiry

import "sort"

// RankMode modo de la lista FEFO.
type RankMode int

const (
	// RankPriority solo lotes urgentes (NEAR_EXPIRY y EXPIRED) — modo por
	// defecto, alimenta el widget del dashboard.
	RankPriority RankMode = iota
	// RankFull catálogo completo ordenado — listas de picking operativas.
	RankFull
)

// RankFEFO construye la lista "vender primero" (First-Expiry-First-Out).
//
// Orden: fecha de vencimiento ascendente; empate por número de lote
// ascendente (lexicográfico) y, en última instancia, por ID ascendente.
// El resultado es un slice nuevo; la entrada no se modifica y llamadas
// repetidas con la misma entrada producen exactamente la misma salida.
//
// Los lotes con cantidad cero SÍ se incluyen: pueden representar stock
// pendiente de conciliación de descarte. Filtrarlos es decisión del caller
// (ver el handler de inventario).
func RankFEFO(classified []ClassifiedBatch, mode RankMode) []ClassifiedBatch {
	ranked := make([]ClassifiedBatch, 0, len(classified))
	for _, cb := range classified {
		if mode == RankPriority && cb.Status == StatusGood {
			continue
		}
		ranked = append(ranked, cb)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if !a.ExpiryDate.Equal(*b.ExpiryDate) {
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if a.BatchNumber != b.BatchNumber {
			return a.BatchNumber < b.BatchNumber
		}
		return a.ID < b.ID
	})
	return ranked
}
