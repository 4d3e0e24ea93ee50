package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain/money"
)

// Loan representa un préstamo a cuotas de un Customer.
// Es dueño de sus cuotas; Paid es true si y solo si todas las cuotas están pagadas.
type Loan struct {
	ID                   string
	CustomerID           string
	LoanAmount           decimal.Decimal // principal
	InterestRate         decimal.Decimal
	NumberOfInstallments int
	CreateDate           time.Time
	Paid                 bool
	Installments         []*Installment // ordenadas por DueDate ascendente
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TotalAmount suma los montos originales de todas las cuotas (principal + interés).
func (l *Loan) TotalAmount() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(l.Installments))
	for _, inst := range l.Installments {
		amounts = append(amounts, inst.Amount)
	}
	return money.Sum(amounts...)
}

// AllInstallmentsPaid indica si no queda ninguna cuota pendiente.
func (l *Loan) AllInstallmentsPaid() bool {
	for _, inst := range l.Installments {
		if !inst.Paid {
			return false
		}
	}
	return true
}

// Installment es una cuota de un préstamo.
// DueDate y PaymentDate son fechas de calendario (00:00 UTC).
type Installment struct {
	ID          string
	LoanID      string
	Amount      decimal.Decimal     // monto original adeudado
	PaidAmount  decimal.NullDecimal // monto efectivamente pagado (con descuento o recargo)
	DueDate     time.Time
	PaymentDate *time.Time
	Paid        bool
}

// MarkPaid registra el pago de la cuota. Una cuota pagada nunca vuelve a pendiente.
func (i *Installment) MarkPaid(amount decimal.Decimal, on time.Time) {
	i.Paid = true
	i.PaidAmount = decimal.NewNullDecimal(amount)
	i.PaymentDate = &on
}
