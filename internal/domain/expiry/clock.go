package expiry

import "time"

// Clock provee la fecha "hoy" para todos los cálculos de vencimiento.
// La fecha se captura UNA sola vez al inicio de cada cómputo y se pasa
// explícitamente; el motor nunca vuelve a leer el reloj a mitad de un fold.
type Clock interface {
	// Today devuelve la fecha calendario actual normalizada a medianoche UTC.
	Today() time.Time
}

// SystemClock implementación real sobre time.Now (zona fija: UTC).
type SystemClock struct{}

// Today devuelve la fecha de hoy a medianoche UTC.
func (SystemClock) Today() time.Time { return Midnight(time.Now()) }

// FixedClock reloj congelado para tests y recomputaciones reproducibles.
type FixedClock struct {
	Date time.Time
}

// Today devuelve la fecha fija normalizada a medianoche UTC.
func (c FixedClock) Today() time.Time { return Midnight(c.Date) }

// Midnight normaliza un instante a medianoche UTC. Toda la aritmética de
// días del motor opera sobre fechas así normalizadas; la hora del día y la
// zona horaria del caller son irrelevantes.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween devuelve días calendario completos entre from y to (to − from),
// negativo si to es anterior. UTC no tiene cambios de horario, así que la
// división por 24h es exacta.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}
