package loan

import (
	"time"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func (uc *UseCase) toLoanResponse(l *entity.Loan) dto.LoanResponse {
	installments := make([]dto.InstallmentResponse, 0, len(l.Installments))
	for _, inst := range l.Installments {
		installments = append(installments, uc.toInstallmentResponse(inst))
	}
	return dto.LoanResponse{
		ID:                   l.ID,
		CustomerID:           l.CustomerID,
		LoanAmount:           uc.formatter.Format(l.LoanAmount),
		InterestRate:         l.InterestRate.String(),
		TotalAmount:          uc.formatter.Format(l.TotalAmount()),
		NumberOfInstallments: l.NumberOfInstallments,
		CreateDate:           formatDate(l.CreateDate),
		Paid:                 l.Paid,
		Installments:         installments,
	}
}

func (uc *UseCase) toInstallmentResponse(i *entity.Installment) dto.InstallmentResponse {
	out := dto.InstallmentResponse{
		ID:      i.ID,
		DueDate: formatDate(i.DueDate),
		Amount:  uc.formatter.Format(i.Amount),
		Paid:    i.Paid,
	}
	if i.PaidAmount.Valid {
		out.PaidAmount = uc.formatter.Format(i.PaidAmount.Decimal)
	}
	if i.PaymentDate != nil {
		out.PaymentDate = formatDate(*i.PaymentDate)
	}
	return out
}
