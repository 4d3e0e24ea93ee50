package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, customer_id, loan_amount, interest_rate, number_of_installments, create_date, is_paid, created_at, updated_at`

const installmentColumns = `id, loan_id, amount, paid_amount, due_date, payment_date, is_paid`

// LoanRepo implementación de LoanRepository (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Create persiste el préstamo y sus cuotas en un único batch. Asigna IDs a ambos.
func (r *LoanRepo) Create(ctx context.Context, loan *entity.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	loan.CreatedAt, loan.UpdatedAt = now, now

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO loans (`+loanColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		loan.ID, loan.CustomerID, loan.LoanAmount, loan.InterestRate, loan.NumberOfInstallments,
		loan.CreateDate, loan.Paid, loan.CreatedAt, loan.UpdatedAt,
	)
	for _, inst := range loan.Installments {
		if inst.ID == "" {
			inst.ID = uuid.New().String()
		}
		inst.LoanID = loan.ID
		batch.Queue(`
			INSERT INTO loan_installments (`+installmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			inst.ID, inst.LoanID, inst.Amount, inst.PaidAmount, inst.DueDate, inst.PaymentDate, inst.Paid,
		)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByCustomerAndID obtiene el préstamo con sus cuotas ordenadas por vencimiento.
// Devuelve (nil, nil) si no existe o pertenece a otro cliente.
func (r *LoanRepo) GetByCustomerAndID(ctx context.Context, customerID, loanID string) (*entity.Loan, error) {
	if !validUUID(customerID) || !validUUID(loanID) {
		return nil, nil
	}
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND customer_id = $2`
	l, err := scanLoan(r.q.QueryRow(ctx, query, loanID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	if err := r.attachInstallments(ctx, []*entity.Loan{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// ListByCustomer lista préstamos del cliente, más recientes primero, con filtros opcionales.
func (r *LoanRepo) ListByCustomer(ctx context.Context, customerID string, filter repository.LoanFilter, page, pageSize int) (*repository.LoanPage, error) {
	out := &repository.LoanPage{Items: []*entity.Loan{}, Page: page, PageSize: pageSize}
	if !validUUID(customerID) {
		return out, nil
	}

	where := []string{"customer_id = $1"}
	args := []any{customerID}
	if filter.NumberOfInstallments != nil {
		args = append(args, *filter.NumberOfInstallments)
		where = append(where, fmt.Sprintf("number_of_installments = $%d", len(args)))
	}
	if filter.Paid != nil {
		args = append(args, *filter.Paid)
		where = append(where, fmt.Sprintf("is_paid = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE `+cond, args...).Scan(&out.Total); err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	if out.Total == 0 {
		return out, nil
	}

	args = append(args, pageSize, page*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE %s ORDER BY create_date DESC, id LIMIT $%d OFFSET $%d`,
		loanColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		out.Items = append(out.Items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachInstallments(ctx, out.Items); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePayment guarda el flag paid del préstamo y el estado de las cuotas pagadas.
func (r *LoanRepo) UpdatePayment(ctx context.Context, loan *entity.Loan) error {
	loan.UpdatedAt = time.Now().UTC()
	batch := &pgx.Batch{}
	batch.Queue(`UPDATE loans SET is_paid = $2, updated_at = $3 WHERE id = $1`, loan.ID, loan.Paid, loan.UpdatedAt)
	for _, inst := range loan.Installments {
		if !inst.Paid {
			continue
		}
		batch.Queue(`
			UPDATE loan_installments
			SET paid_amount = $3, payment_date = $4, is_paid = TRUE
			WHERE id = $1 AND loan_id = $2`,
			inst.ID, loan.ID, inst.PaidAmount, inst.PaymentDate,
		)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("update loan payment: %w", err)
	}
	return nil
}

// attachInstallments carga en una sola consulta las cuotas de todos los préstamos dados.
func (r *LoanRepo) attachInstallments(ctx context.Context, loans []*entity.Loan) error {
	if len(loans) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Loan, len(loans))
	ids := make([]uuid.UUID, 0, len(loans))
	for _, l := range loans {
		byID[l.ID] = l
		ids = append(ids, uuid.MustParse(l.ID))
		l.Installments = nil
	}

	rows, err := r.q.Query(ctx, `
		SELECT `+installmentColumns+`
		FROM loan_installments
		WHERE loan_id = ANY($1)
		ORDER BY loan_id, due_date, id`, ids)
	if err != nil {
		return fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var inst entity.Installment
		if err := rows.Scan(
			&inst.ID, &inst.LoanID, &inst.Amount, &inst.PaidAmount,
			&inst.DueDate, &inst.PaymentDate, &inst.Paid,
		); err != nil {
			return fmt.Errorf("scan installment: %w", err)
		}
		if l, ok := byID[inst.LoanID]; ok {
			l.Installments = append(l.Installments, &inst)
		}
	}
	return rows.Err()
}

func scanLoan(row pgx.Row) (*entity.Loan, error) {
	var l entity.Loan
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.LoanAmount, &l.InterestRate, &l.NumberOfInstallments,
		&l.CreateDate, &l.Paid, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.CreateDate = l.CreateDate.UTC()
	return &l, nil
}
