package lending

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/money"
)

// Coeficiente diario de descuento (pago anticipado) o recargo (pago tardío) sobre el monto de la cuota.
var dailyAdjustmentRate = decimal.RequireFromString("0.001")

// Solo son elegibles las cuotas que vencen hasta el día 1 de dentro de dos meses.
const eligibilityWindowMonths = 2

// PaymentResult resumen de un pago aplicado a un préstamo.
type PaymentResult struct {
	InstallmentsPaid   int
	TotalAmountSpent   decimal.Decimal // suma de montos ajustados efectivamente cobrados
	TotalAmountCovered decimal.Decimal // suma de montos originales de las cuotas pagadas
	LoanPaidCompletely bool
	PaidInstallments   []*entity.Installment
}

// Allocator aplica pagos a las cuotas pendientes de un préstamo.
type Allocator struct {
	rounding money.Rounding
}

// NewAllocator construye el asignador con la política de redondeo de la moneda.
func NewAllocator(rounding money.Rounding) *Allocator {
	return &Allocator{rounding: rounding}
}

// MaxDueDate fecha de corte: día 1 del mes dos meses después del de today.
func MaxDueDate(today time.Time) time.Time {
	return FirstDayOfMonthAfter(today, eligibilityWindowMonths)
}

// AdjustedAmount aplica el descuento/recargo lineal de 0.1% diario y redondea half-up.
// days < 0 es pago anticipado. Nunca devuelve un monto negativo.
func (a *Allocator) AdjustedAmount(amount decimal.Decimal, days int64) decimal.Decimal {
	adjustment := amount.Mul(dailyAdjustmentRate.Mul(decimal.NewFromInt(days)))
	return money.Max0(a.rounding.Round(amount.Add(adjustment)))
}

// Allocate recorre las cuotas pendientes en orden de vencimiento y paga cada una completa
// mientras alcance el dinero. Se detiene en la primera que no alcanza: no hay pagos parciales
// ni se salta a una cuota posterior más barata. Si se pagó al menos una cuota, actualiza el
// flag del préstamo y libera en el ledger la suma de los montos originales.
func (a *Allocator) Allocate(ledger *CreditLedger, loan *entity.Loan, rawAmount *string, today time.Time) (PaymentResult, error) {
	paymentAmount, err := ValidatePaymentAmount(rawAmount)
	if err != nil {
		return PaymentResult{}, err
	}

	today = DateOf(today)
	maxDueDate := MaxDueDate(today)
	amountLeft := paymentAmount
	result := PaymentResult{
		TotalAmountSpent:   decimal.Zero,
		TotalAmountCovered: decimal.Zero,
	}

	for _, inst := range inDueDateOrder(loan.Installments) {
		if !amountLeft.IsPositive() {
			break
		}
		if inst.Paid || inst.DueDate.After(maxDueDate) {
			continue
		}
		paidAmount := a.AdjustedAmount(inst.Amount, DaysBetween(inst.DueDate, today))
		if paidAmount.GreaterThan(amountLeft) {
			break
		}

		inst.MarkPaid(paidAmount, today)
		amountLeft = amountLeft.Sub(paidAmount)
		result.TotalAmountSpent = result.TotalAmountSpent.Add(paidAmount)
		result.TotalAmountCovered = result.TotalAmountCovered.Add(inst.Amount)
		result.InstallmentsPaid++
		result.PaidInstallments = append(result.PaidInstallments, inst)
	}

	if result.InstallmentsPaid > 0 {
		if loan.AllInstallmentsPaid() {
			loan.Paid = true
		}
		ledger.Release(result.TotalAmountCovered)
	}
	result.LoanPaidCompletely = loan.Paid
	return result, nil
}

// inDueDateOrder devuelve una copia ordenada (estable) por fecha de vencimiento.
func inDueDateOrder(installments []*entity.Installment) []*entity.Installment {
	out := make([]*entity.Installment, len(installments))
	copy(out, installments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}
