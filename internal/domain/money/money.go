// Package money contiene las primitivas de aritmética decimal con redondeo explícito
// que usa el motor de préstamos. Todo monto pasa por shopspring/decimal; nunca float64.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidNumber = errors.New("money: número con espacios")

// ErrOutOfBounds número con demasiados dígitos o un exponente fuera de MaxExponent.
var ErrOutOfBounds = errors.New("money: número fuera de rango")

// Límites de los decimales aceptados como entrada. Un exponente arbitrario haría que la
// primera comparación reescale el coeficiente a un entero de tamaño ilimitado.
const (
	MaxExponent = 18
	MaxDigits   = 38
	maxTextLen  = 64
)

// DefaultFractionDigits se usa cuando la moneda configurada no define decimales propios.
const DefaultFractionDigits int32 = 2

// Rounding agrupa la política de redondeo de la moneda (half-up a FractionDigits decimales).
// Se pasa explícitamente a quien la necesite en lugar de depender de estado global de formato.
type Rounding struct {
	FractionDigits int32
}

// NewRounding construye la política. Valores negativos caen en DefaultFractionDigits.
func NewRounding(fractionDigits int32) Rounding {
	if fractionDigits < 0 {
		fractionDigits = DefaultFractionDigits
	}
	return Rounding{FractionDigits: fractionDigits}
}

// Round redondea half-up (alejándose de cero en el empate).
func (r Rounding) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(r.FractionDigits)
}

// Divide divide a entre n y redondea half-up sin pasar por una precisión intermedia.
func (r Rounding) Divide(a decimal.Decimal, n int64) decimal.Decimal {
	return a.DivRound(decimal.NewFromInt(n), r.FractionDigits)
}

// Parse interpreta un decimal en texto. El texto vacío o con espacios es inválido, y el
// resultado debe pasar CheckBounds.
func Parse(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) != raw {
		return decimal.Decimal{}, errInvalidNumber
	}
	if len(raw) > maxTextLen {
		return decimal.Decimal{}, ErrOutOfBounds
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := CheckBounds(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// CheckBounds rechaza exponentes fuera de [-MaxExponent, MaxExponent] y coeficientes de más
// de MaxDigits dígitos.
func CheckBounds(d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -MaxExponent || exp > MaxExponent || d.NumDigits() > MaxDigits {
		return ErrOutOfBounds
	}
	return nil
}

// Sum suma una lista de montos.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// OrZero devuelve el valor de un decimal nulable, o cero si es nulo.
func OrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// Max0 limita un monto a cero por abajo.
func Max0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
