package lending

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/money"
)

// OriginationRequest datos crudos de una solicitud de préstamo.
type OriginationRequest struct {
	LoanAmount           *decimal.Decimal
	NumberOfInstallments int
	InterestRate         string
}

// LoanTerms valores derivados de una solicitud ya validada. Inmutable una vez construido.
type LoanTerms struct {
	LoanAmount              decimal.Decimal
	InterestRate            decimal.Decimal
	NumberOfInstallments    int
	AmountToBePaidBack      decimal.Decimal // principal + principal * tasa
	SingleInstallmentAmount decimal.Decimal
	Residue                 decimal.Decimal // ajuste de redondeo que absorbe la última cuota
	OriginatedAt            time.Time
}

// Originator construye préstamos completos con sus cuotas.
type Originator struct {
	rounding money.Rounding
}

// NewOriginator construye el originador con la política de redondeo de la moneda.
func NewOriginator(rounding money.Rounding) *Originator {
	return &Originator{rounding: rounding}
}

// Terms valida la solicitud y calcula montos. No toca el crédito del cliente.
func (o *Originator) Terms(req OriginationRequest, now time.Time) (LoanTerms, error) {
	if err := ValidateNumberOfInstallments(req.NumberOfInstallments); err != nil {
		return LoanTerms{}, err
	}
	rate, err := ValidateInterestRate(req.InterestRate)
	if err != nil {
		return LoanTerms{}, err
	}
	if err := ValidateLoanAmount(req.LoanAmount); err != nil {
		return LoanTerms{}, err
	}

	principal := *req.LoanAmount
	n := int64(req.NumberOfInstallments)
	total := principal.Add(principal.Mul(rate))
	single := o.rounding.Divide(total, n)
	residue := total.Sub(single.Mul(decimal.NewFromInt(n)))

	return LoanTerms{
		LoanAmount:              principal,
		InterestRate:            rate,
		NumberOfInstallments:    req.NumberOfInstallments,
		AmountToBePaidBack:      total,
		SingleInstallmentAmount: single,
		Residue:                 residue,
		OriginatedAt:            now.UTC(),
	}, nil
}

// Originate valida, verifica el límite contra el principal, arma el préstamo y reserva
// en el libro de crédito la suma de las cuotas (principal + interés).
// El préstamo devuelto aún no tiene ID; lo asigna el repositorio al persistir.
func (o *Originator) Originate(ledger *CreditLedger, req OriginationRequest, now time.Time) (*entity.Loan, LoanTerms, error) {
	terms, err := o.Terms(req, now)
	if err != nil {
		return nil, LoanTerms{}, err
	}
	if err := ledger.CheckSufficientLimit(terms.LoanAmount); err != nil {
		return nil, LoanTerms{}, err
	}

	loan := &entity.Loan{
		CustomerID:           ledger.Customer().ID,
		LoanAmount:           terms.LoanAmount,
		InterestRate:         terms.InterestRate,
		NumberOfInstallments: terms.NumberOfInstallments,
		CreateDate:           terms.OriginatedAt,
		Paid:                 false,
		Installments:         BuildInstallments(terms),
	}

	ledger.Reserve(loan.TotalAmount())
	return loan, terms, nil
}

// BuildInstallments genera las cuotas: todas por SingleInstallmentAmount salvo la última,
// que suma el residuo. La cuota i vence el día 1 del mes i meses después de la originación.
func BuildInstallments(terms LoanTerms) []*entity.Installment {
	out := make([]*entity.Installment, 0, terms.NumberOfInstallments)
	for i := 1; i <= terms.NumberOfInstallments; i++ {
		amount := terms.SingleInstallmentAmount
		if i == terms.NumberOfInstallments {
			amount = amount.Add(terms.Residue)
		}
		out = append(out, &entity.Installment{
			Amount:  amount,
			DueDate: FirstDayOfMonthAfter(terms.OriginatedAt, i),
		})
	}
	return out
}
