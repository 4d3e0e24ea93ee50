package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/lending"
	"github.com/jhoicas/Loan-api/internal/domain/money"
)

// newLoanFixture origina 60 al 10% en 6 cuotas el 2025-02-03: seis cuotas de 11.00
// que vencen del 2025-03-01 al 2025-08-01, con 66 de crédito usado.
func newLoanFixture(t *testing.T) (*entity.Customer, *lending.CreditLedger, *entity.Loan) {
	t.Helper()
	customer := newCustomer("500", nil)
	ledger := lending.NewCreditLedger(customer)
	loan, _, err := newOriginator().Originate(ledger, lending.OriginationRequest{
		LoanAmount:           decPtr("60"),
		NumberOfInstallments: 6,
		InterestRate:         "0.1",
	}, date(2025, time.February, 3))
	require.NoError(t, err)
	return customer, ledger, loan
}

func newAllocator() *lending.Allocator {
	return lending.NewAllocator(money.NewRounding(2))
}

func usedOf(c *entity.Customer) string {
	return c.UsedCreditLimit.Decimal.StringFixed(2)
}

// ─── Montos ajustados ─────────────────────────────────────────────────────────

func TestAdjustedAmount(t *testing.T) {
	a := newAllocator()
	eleven := decPtr("11")

	assert.Equal(t, "11.00", a.AdjustedAmount(*eleven, 0).StringFixed(2))
	assert.Equal(t, "10.71", a.AdjustedAmount(*eleven, -26).StringFixed(2))
	assert.Equal(t, "10.66", a.AdjustedAmount(*eleven, -31).StringFixed(2))
	assert.Equal(t, "11.11", a.AdjustedAmount(*eleven, 10).StringFixed(2))
	assert.Equal(t, "0.00", a.AdjustedAmount(*eleven, -2000).StringFixed(2))
}

func TestMaxDueDate(t *testing.T) {
	assert.Equal(t, date(2025, time.May, 1), lending.MaxDueDate(date(2025, time.March, 31)))
	assert.Equal(t, date(2026, time.January, 1), lending.MaxDueDate(date(2025, time.November, 15)))
}

// ─── Allocate ─────────────────────────────────────────────────────────────────

func TestAllocate_PagoExactoEnFechaDeVencimiento(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	result, err := newAllocator().Allocate(ledger, loan, strPtr("11"), date(2025, time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.InstallmentsPaid)
	assert.Equal(t, "11.00", result.TotalAmountSpent.StringFixed(2))
	assert.False(t, result.LoanPaidCompletely)
	assert.Equal(t, "55.00", usedOf(customer))

	first := loan.Installments[0]
	assert.True(t, first.Paid)
	assert.Equal(t, "11.00", first.PaidAmount.Decimal.StringFixed(2))
	require.NotNil(t, first.PaymentDate)
	assert.Equal(t, date(2025, time.March, 1), *first.PaymentDate)
}

func TestAllocate_PagoAnticipadoConDescuento(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	result, err := newAllocator().Allocate(ledger, loan, strPtr("11"), date(2025, time.February, 3))
	require.NoError(t, err)

	assert.Equal(t, 1, result.InstallmentsPaid)
	assert.Equal(t, "10.71", result.TotalAmountSpent.StringFixed(2))
	assert.Equal(t, "10.71", loan.Installments[0].PaidAmount.Decimal.StringFixed(2))
	// Se libera el monto original, no el cobrado.
	assert.Equal(t, "55.00", usedOf(customer))
}

func TestAllocate_MontoInsuficienteNoPagaNada(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	result, err := newAllocator().Allocate(ledger, loan, strPtr("10"), date(2025, time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, 0, result.InstallmentsPaid)
	assert.True(t, result.TotalAmountSpent.IsZero())
	assert.False(t, result.LoanPaidCompletely)
	assert.Equal(t, "66.00", usedOf(customer))
	for _, inst := range loan.Installments {
		assert.False(t, inst.Paid)
	}
}

func TestAllocate_MontoInsuficienteAntesDelVencimiento(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	// 26 días antes del vencimiento la cuota cuesta 10.71 > 10.
	result, err := newAllocator().Allocate(ledger, loan, strPtr("10"), date(2025, time.February, 3))
	require.NoError(t, err)

	assert.Equal(t, 0, result.InstallmentsPaid)
	assert.True(t, result.TotalAmountSpent.IsZero())
	assert.Equal(t, "66.00", usedOf(customer))
	for _, inst := range loan.Installments {
		assert.False(t, inst.Paid)
		assert.False(t, inst.PaidAmount.Valid)
	}
}

func TestAllocate_MontoConExponenteEnormeSeRechaza(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	_, err := newAllocator().Allocate(ledger, loan, strPtr("1e50000000"), date(2025, time.March, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, "66.00", usedOf(customer))
	assert.False(t, loan.Installments[0].Paid)
}

func TestAllocate_DosCuotas(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	result, err := newAllocator().Allocate(ledger, loan, strPtr("22"), date(2025, time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, result.InstallmentsPaid)
	assert.Equal(t, "21.66", result.TotalAmountSpent.StringFixed(2))
	assert.Equal(t, "44.00", usedOf(customer))
	assert.Len(t, result.PaidInstallments, 2)
}

func TestAllocate_VentanaDeElegibilidad(t *testing.T) {
	for _, amount := range []string{"33", "44", "66"} {
		customer, ledger, loan := newLoanFixture(t)

		result, err := newAllocator().Allocate(ledger, loan, strPtr(amount), date(2025, time.March, 1))
		require.NoError(t, err)

		assert.Equal(t, 3, result.InstallmentsPaid, "monto %s", amount)
		assert.Equal(t, "31.99", result.TotalAmountSpent.StringFixed(2), "monto %s", amount)
		assert.Equal(t, "33.00", usedOf(customer), "monto %s", amount)
		assert.False(t, loan.Installments[3].Paid)
	}
}

func TestAllocate_CompletaElPrestamo(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)
	allocator := newAllocator()

	_, err := allocator.Allocate(ledger, loan, strPtr("66"), date(2025, time.March, 1))
	require.NoError(t, err)

	result, err := allocator.Allocate(ledger, loan, strPtr("66"), date(2025, time.June, 1))
	require.NoError(t, err)

	assert.Equal(t, 3, result.InstallmentsPaid)
	assert.Equal(t, "32.00", result.TotalAmountSpent.StringFixed(2))
	assert.True(t, result.LoanPaidCompletely)
	assert.True(t, loan.Paid)
	assert.Equal(t, "0.00", usedOf(customer))

	// Un préstamo pagado no cambia con pagos posteriores.
	again, err := allocator.Allocate(ledger, loan, strPtr("66"), date(2025, time.June, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, again.InstallmentsPaid)
	assert.True(t, again.TotalAmountSpent.IsZero())
	assert.True(t, again.LoanPaidCompletely)
	assert.Equal(t, "0.00", usedOf(customer))
}

func TestAllocate_PagoTardioConRecargo(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)
	allocator := newAllocator()
	lateDay := date(2025, time.March, 11)

	result, err := allocator.Allocate(ledger, loan, strPtr("11"), lateDay)
	require.NoError(t, err)
	assert.Equal(t, 0, result.InstallmentsPaid)

	result, err = allocator.Allocate(ledger, loan, strPtr("11.11"), lateDay)
	require.NoError(t, err)
	assert.Equal(t, 1, result.InstallmentsPaid)
	assert.Equal(t, "11.11", result.TotalAmountSpent.StringFixed(2))
	assert.Equal(t, "55.00", usedOf(customer))
}

func TestAllocate_MontoInvalido(t *testing.T) {
	customer, ledger, loan := newLoanFixture(t)

	for _, raw := range []*string{nil, strPtr(""), strPtr("x"), strPtr("0"), strPtr("-1")} {
		_, err := newAllocator().Allocate(ledger, loan, raw, date(2025, time.March, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
	assert.Equal(t, "66.00", usedOf(customer))
}

func TestAllocate_OrdenaPorVencimiento(t *testing.T) {
	_, ledger, loan := newLoanFixture(t)
	// Orden de almacenamiento invertido; debe pagarse primero la más antigua.
	for i, j := 0, len(loan.Installments)-1; i < j; i, j = i+1, j-1 {
		loan.Installments[i], loan.Installments[j] = loan.Installments[j], loan.Installments[i]
	}

	result, err := newAllocator().Allocate(ledger, loan, strPtr("11"), date(2025, time.March, 1))
	require.NoError(t, err)
	require.Equal(t, 1, result.InstallmentsPaid)
	assert.Equal(t, date(2025, time.March, 1), result.PaidInstallments[0].DueDate)
}
