package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, surname, username, password_hash, role, credit_limit, used_credit_limit, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. Asigna ID y timestamps si faltan.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Surname, customer.Username, customer.PasswordHash,
		customer.Role, customer.CreditLimit, customer.UsedCreditLimit, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByUsername obtiene un cliente por username.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE username = $1`, username)
}

// GetForUpdate obtiene el cliente bloqueando su fila hasta el fin de la transacción.
// Solo tiene sentido con un Querier transaccional.
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

// UpdateCreditUsage guarda el crédito usado.
func (r *CustomerRepo) UpdateCreditUsage(ctx context.Context, id string, used decimal.NullDecimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET used_credit_limit = $2, updated_at = NOW() WHERE id = $1`,
		id, used,
	)
	if err != nil {
		return fmt.Errorf("update customer credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "cliente", Key: "id: " + id}
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Surname, &c.Username, &c.PasswordHash, &c.Role,
		&c.CreditLimit, &c.UsedCreditLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
