package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y el error se propaga sin envolver.
type TxRunner interface {
	RunLending(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		loanRepo repository.LoanRepository,
	) error) error
}

// MoneyFormatter formatea montos para las respuestas (moneda y locale configurados).
type MoneyFormatter interface {
	Format(amount decimal.Decimal) string
}

// Metrics registra los resultados de originación y pago.
type Metrics interface {
	LoanOriginated(totalAmount decimal.Decimal)
	OriginationRejected(reason string)
	PaymentApplied(installmentsPaid int, amountSpent decimal.Decimal)
}

// StatementData datos ya formateados del estado de cuenta de un préstamo.
type StatementData struct {
	Customer    *entity.Customer
	Loan        dto.LoanResponse
	Outstanding string
	GeneratedAt time.Time
}

// StatementGenerator genera el PDF del estado de cuenta.
type StatementGenerator interface {
	GenerateLoanStatement(ctx context.Context, data StatementData) ([]byte, error)
}

type noopMetrics struct{}

func (noopMetrics) LoanOriginated(decimal.Decimal)      {}
func (noopMetrics) OriginationRejected(string)          {}
func (noopMetrics) PaymentApplied(int, decimal.Decimal) {}
