package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"github.com/jhoicas/Loan-api/internal/application/loan"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

var _ loan.TxRunner = (*TxRunner)(nil)

const (
	maxTxRetries  = 3
	txRetryBase   = 50 * time.Millisecond
	txRetryJitter = 25 * time.Millisecond
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLending inicia una transacción READ COMMITTED con repos de clientes y préstamos atados a ella
// y hace Commit o Rollback. Fallos de serialización y deadlocks se reintentan desde el principio
// con backoff exponencial; cualquier otro error (incluidos los del motor) se devuelve sin tocar.
func (r *TxRunner) RunLending(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
) error) error {
	backoff := retry.WithMaxRetries(maxTxRetries, retry.WithJitter(txRetryJitter, retry.NewExponential(txRetryBase)))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := r.runOnce(ctx, fn)
		if isRetryable(err) {
			log.Warn().Err(err).Int("attempt", attempt).Msg("transacción en conflicto, reintentando")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx), NewLoanRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
