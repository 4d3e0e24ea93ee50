package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Los métodos Get* devuelven (nil, nil) si el cliente no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByUsername(ctx context.Context, username string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	UpdateCreditUsage(ctx context.Context, id string, used decimal.NullDecimal) error
}
