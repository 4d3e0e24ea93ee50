// Package lending es el motor de préstamos: validación de solicitudes, libro de crédito
// del cliente, originación de préstamos y asignación de pagos a cuotas.
// No conoce HTTP ni base de datos; opera sobre entidades ya cargadas.
package lending

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/money"
)

const (
	minInterestRateText = "0.1"
	maxInterestRateText = "0.5"
)

var (
	allowedNumberOfInstallments = map[int]struct{}{6: {}, 9: {}, 12: {}, 24: {}}
	minInterestRate             = decimal.RequireFromString(minInterestRateText)
	maxInterestRate             = decimal.RequireFromString(maxInterestRateText)
)

// AllowedNumberOfInstallments devuelve el conjunto permitido ordenado ascendentemente.
func AllowedNumberOfInstallments() []int {
	out := make([]int, 0, len(allowedNumberOfInstallments))
	for n := range allowedNumberOfInstallments {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// ValidateNumberOfInstallments exige que n pertenezca a {6, 9, 12, 24}.
func ValidateNumberOfInstallments(n int) error {
	if _, ok := allowedNumberOfInstallments[n]; !ok {
		return &domain.InvalidRequestError{
			Field:  "numberOfInstallments",
			Value:  strconv.Itoa(n),
			Reason: fmt.Sprintf("debe ser uno de %v", AllowedNumberOfInstallments()),
		}
	}
	return nil
}

// ValidateInterestRate interpreta la tasa y exige que esté en [0.1, 0.5], ambos inclusive.
func ValidateInterestRate(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Decimal{}, &domain.InvalidRequestError{
			Field:  "interestRate",
			Reason: "no puede omitirse",
		}
	}
	outOfRange := &domain.InvalidRequestError{
		Field:  "interestRate",
		Value:  clip(raw),
		Reason: fmt.Sprintf("debe estar entre %s y %s, ambos inclusive", minInterestRateText, maxInterestRateText),
	}
	rate, err := money.Parse(raw)
	if err != nil {
		return decimal.Decimal{}, outOfRange
	}
	if rate.LessThan(minInterestRate) || rate.GreaterThan(maxInterestRate) {
		return decimal.Decimal{}, outOfRange
	}
	return rate, nil
}

// ParseLoanAmount interpreta el principal recibido como texto. nil sigue siendo nil para que
// ValidateLoanAmount informe la omisión en su turno.
func ParseLoanAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := money.Parse(*raw)
	if err != nil {
		return nil, &domain.InvalidRequestError{Field: "loanAmount", Value: clip(*raw), Reason: numberReason(err)}
	}
	return &amount, nil
}

// ValidateLoanAmount exige un principal presente, acotado y mayor que cero.
func ValidateLoanAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return &domain.InvalidRequestError{Field: "loanAmount", Reason: "no puede omitirse"}
	}
	if err := money.CheckBounds(*amount); err != nil {
		return &domain.InvalidRequestError{Field: "loanAmount", Reason: numberReason(err)}
	}
	if !amount.IsPositive() {
		return &domain.InvalidRequestError{
			Field:  "loanAmount",
			Value:  amount.String(),
			Reason: "debe ser mayor que cero",
		}
	}
	return nil
}

// ValidatePaymentAmount interpreta el monto de pago y exige que sea numérico y mayor que cero.
func ValidatePaymentAmount(raw *string) (decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.Decimal{}, &domain.InvalidRequestError{Field: "amount", Reason: "no puede omitirse"}
	}
	amount, err := money.Parse(*raw)
	if err != nil {
		return decimal.Decimal{}, &domain.InvalidRequestError{
			Field:  "amount",
			Value:  clip(*raw),
			Reason: numberReason(err),
		}
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, &domain.InvalidRequestError{
			Field:  "amount",
			Value:  *raw,
			Reason: "debe ser mayor que cero",
		}
	}
	return amount, nil
}

func numberReason(err error) string {
	if errors.Is(err, money.ErrOutOfBounds) {
		return fmt.Sprintf("fuera de rango (hasta %d dígitos, exponente entre -%d y %d)", money.MaxDigits, money.MaxExponent, money.MaxExponent)
	}
	return "debe ser numérico"
}

// clip acota el valor que viaja en el mensaje de error.
func clip(raw string) string {
	const maxShown = 32
	if len(raw) <= maxShown {
		return raw
	}
	return raw[:maxShown] + "…"
}
