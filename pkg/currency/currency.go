// Package currency formatea montos para presentación según moneda ISO 4217 y locale BCP 47.
package currency

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos con símbolo de moneda, separadores del locale y decimales fijos.
type Formatter struct {
	unit           currency.Unit
	printer        *message.Printer
	fractionDigits int32
	decimalSep     string
}

// NewFormatter construye el formateador. fractionDigits < 0 usa los decimales estándar de la moneda.
func NewFormatter(code, locale string, fractionDigits int32) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency: moneda %q inválida: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("currency: locale %q inválido: %w", locale, err)
	}
	if fractionDigits < 0 {
		fractionDigits = StandardFractionDigits(unit)
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		unit:           unit,
		printer:        printer,
		fractionDigits: fractionDigits,
		decimalSep:     decimalSeparator(printer),
	}, nil
}

// decimalSeparator obtiene el separador decimal del locale formateando 0.5 y
// quitando el primer y el último dígito.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(0.5, number.Scale(1)))
	_, first := utf8.DecodeRuneInString(s)
	_, last := utf8.DecodeLastRuneInString(s)
	if len(s) <= first+last {
		return "."
	}
	return s[first : len(s)-last]
}

// StandardFractionDigits decimales estándar de la moneda (ej. USD 2, JPY 0).
func StandardFractionDigits(unit currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FractionDigitsFor devuelve los decimales estándar de un código ISO, o 2 si el código es inválido.
func FractionDigitsFor(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	return StandardFractionDigits(unit)
}

// FractionDigits decimales con los que formatea este Formatter.
func (f *Formatter) FractionDigits() int32 { return f.fractionDigits }

// Format redondea half-up a los decimales configurados y formatea, ej. "$ 1,234.50" en en-US.
// Trabaja sobre el valor decimal exacto: la parte entera se agrupa con los separadores del
// locale y los decimales salen de los dígitos redondeados, sin pasar por float64.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(f.fractionDigits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	out := f.printer.Sprint(currency.Symbol(f.unit)) + " " + sign + f.integerPart(rounded)
	if f.fractionDigits > 0 {
		out += f.decimalSep + f.fractionPart(rounded)
	}
	return out
}

// integerPart agrupa la parte entera según el locale. Fuera del rango de int64 se
// devuelven los dígitos sin agrupar.
func (f *Formatter) integerPart(d decimal.Decimal) string {
	whole := d.Truncate(0).BigInt()
	if !whole.IsInt64() {
		return whole.String()
	}
	return f.printer.Sprint(number.Decimal(whole.Int64()))
}

// fractionPart devuelve exactamente fractionDigits dígitos, con ceros a la izquierda.
func (f *Formatter) fractionPart(d decimal.Decimal) string {
	frac := d.Sub(d.Truncate(0)).Shift(f.fractionDigits).BigInt()
	if !frac.IsInt64() {
		return frac.String()
	}
	return f.printer.Sprint(number.Decimal(frac.Int64(),
		number.MinIntegerDigits(int(f.fractionDigits)),
		number.NoSeparator(),
	))
}
