package repository

import (
	"context"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
)

// LoanFilter filtros opcionales del listado de préstamos.
type LoanFilter struct {
	NumberOfInstallments *int
	Paid                 *bool
}

// LoanPage página de préstamos con el total de registros que cumplen el filtro.
type LoanPage struct {
	Items    []*entity.Loan
	Page     int
	PageSize int
	Total    int
}

// LoanRepository define el puerto de persistencia para Loan y sus cuotas.
type LoanRepository interface {
	// Create persiste el préstamo y sus cuotas en cascada, asignando IDs a ambos.
	Create(ctx context.Context, loan *entity.Loan) error
	// GetByCustomerAndID devuelve (nil, nil) si el préstamo no existe o es de otro cliente.
	GetByCustomerAndID(ctx context.Context, customerID, loanID string) (*entity.Loan, error)
	ListByCustomer(ctx context.Context, customerID string, filter LoanFilter, page, pageSize int) (*LoanPage, error)
	// UpdatePayment guarda el flag paid del préstamo y las cuotas pagadas.
	UpdatePayment(ctx context.Context, loan *entity.Loan) error
}
