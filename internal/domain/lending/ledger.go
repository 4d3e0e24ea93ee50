package lending

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/money"
)

// CreditLedger es la única vía para modificar el crédito usado de un cliente.
// Reserve y Release son los dos únicos puntos de mutación.
type CreditLedger struct {
	customer *entity.Customer
}

// NewCreditLedger envuelve al cliente cargado (idealmente bloqueado con FOR UPDATE).
func NewCreditLedger(customer *entity.Customer) *CreditLedger {
	return &CreditLedger{customer: customer}
}

// Customer devuelve el cliente envuelto.
func (l *CreditLedger) Customer() *entity.Customer { return l.customer }

// Used devuelve el crédito usado (nulo cuenta como cero).
func (l *CreditLedger) Used() decimal.Decimal {
	return money.OrZero(l.customer.UsedCreditLimit)
}

// Available = creditLimit - usedCreditLimit.
func (l *CreditLedger) Available() decimal.Decimal {
	return l.customer.CreditLimit.Sub(l.Used())
}

// CheckSufficientLimit falla con InsufficientLimitError si el disponible no cubre amount. No muta.
func (l *CreditLedger) CheckSufficientLimit(amount decimal.Decimal) error {
	if l.Available().LessThan(amount) {
		return &domain.InsufficientLimitError{
			CustomerID:      l.customer.ID,
			CreditLimit:     l.customer.CreditLimit,
			UsedCreditLimit: l.Used(),
			Requested:       amount,
		}
	}
	return nil
}

// Reserve suma amount al crédito usado.
func (l *CreditLedger) Reserve(amount decimal.Decimal) {
	l.customer.UsedCreditLimit = decimal.NewNullDecimal(l.Used().Add(amount))
}

// Release resta amount del crédito usado; nunca baja de cero.
func (l *CreditLedger) Release(amount decimal.Decimal) {
	l.customer.UsedCreditLimit = decimal.NewNullDecimal(money.Max0(l.Used().Sub(amount)))
}
