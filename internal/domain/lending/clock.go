package lending

import "time"

// Clock entrega el instante actual y la fecha de calendario de hoy (UTC).
// Se inyecta para que el motor sea determinista en pruebas.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock usa el reloj del sistema normalizado a UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time   { return time.Now().UTC() }
func (SystemClock) Today() time.Time { return DateOf(time.Now()) }

// FixedClock devuelve siempre el mismo instante.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time   { return c.At.UTC() }
func (c FixedClock) Today() time.Time { return DateOf(c.At) }

// DateOf trunca un instante a su fecha de calendario en UTC (00:00).
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstDayOfMonthAfter devuelve el día 1 del mes que está months meses después del mes de t.
func FirstDayOfMonthAfter(t time.Time, months int) time.Time {
	y, m, _ := t.UTC().Date()
	// time.Date normaliza meses fuera de rango (ej. mes 14 → febrero del año siguiente).
	return time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween cuenta los días enteros de from a to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int64 {
	return int64(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
