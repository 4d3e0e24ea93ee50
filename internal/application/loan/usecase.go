// Package loan orquesta el motor de préstamos dentro de transacciones: originación,
// listado, consulta de cuotas, pago y estado de cuenta en PDF.
package loan

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/lending"
	"github.com/jhoicas/Loan-api/internal/domain/money"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

// Motivos de rechazo de originación reportados a métricas.
const (
	RejectInvalidRequest    = "invalid_request"
	RejectInsufficientLimit = "insufficient_limit"
	RejectCustomerNotFound  = "customer_not_found"
)

// Config parámetros del caso de uso.
type Config struct {
	Rounding        money.Rounding
	DefaultPageSize int
	MaxPageSize     int
}

// UseCase casos de uso de préstamos.
type UseCase struct {
	customerRepo repository.CustomerRepository
	loanRepo     repository.LoanRepository
	tx           TxRunner
	clock        lending.Clock
	formatter    MoneyFormatter
	generator    StatementGenerator
	metrics      Metrics
	originator   *lending.Originator
	allocator    *lending.Allocator
	cfg          Config
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	tx TxRunner,
	clock lending.Clock,
	formatter MoneyFormatter,
	generator StatementGenerator,
	metrics Metrics,
	cfg Config,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &UseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		tx:           tx,
		clock:        clock,
		formatter:    formatter,
		generator:    generator,
		metrics:      metrics,
		originator:   lending.NewOriginator(cfg.Rounding),
		allocator:    lending.NewAllocator(cfg.Rounding),
		cfg:          cfg,
	}
}

// FindCustomerByUsername resuelve el cliente sobre el que actúa un administrador.
func (uc *UseCase) FindCustomerByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: "username: " + username}
	}
	return customer, nil
}

// CreateLoan origina un préstamo para el cliente. Bloquea la fila del cliente para que el
// chequeo de límite y la reserva sean atómicos respecto de otros préstamos y pagos.
func (uc *UseCase) CreateLoan(ctx context.Context, customerID string, in dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	loanAmount, err := lending.ParseLoanAmount(in.LoanAmount.Raw())
	if err != nil {
		uc.metrics.OriginationRejected(RejectInvalidRequest)
		return nil, err
	}
	req := lending.OriginationRequest{
		LoanAmount:           loanAmount,
		NumberOfInstallments: in.NumberOfInstallments,
		InterestRate:         string(in.InterestRate),
	}

	var created *entity.Loan
	err = uc.tx.RunLending(ctx, func(customerRepo repository.CustomerRepository, loanRepo repository.LoanRepository) error {
		customer, err := lockCustomer(ctx, customerRepo, customerID)
		if err != nil {
			return err
		}
		ledger := lending.NewCreditLedger(customer)
		loan, _, err := uc.originator.Originate(ledger, req, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := loanRepo.Create(ctx, loan); err != nil {
			return fmt.Errorf("guardar préstamo: %w", err)
		}
		if err := customerRepo.UpdateCreditUsage(ctx, customer.ID, customer.UsedCreditLimit); err != nil {
			return fmt.Errorf("actualizar crédito usado: %w", err)
		}
		created = loan
		return nil
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			uc.metrics.OriginationRejected(reason)
		}
		return nil, err
	}

	uc.metrics.LoanOriginated(created.TotalAmount())
	log.Info().
		Str("customer_id", customerID).
		Str("loan_id", created.ID).
		Str("loan_amount", created.LoanAmount.String()).
		Int("installments", created.NumberOfInstallments).
		Msg("préstamo originado")

	out := uc.toLoanResponse(created)
	return &out, nil
}

// ListLoans lista los préstamos del cliente con filtros opcionales. page empieza en 0.
func (uc *UseCase) ListLoans(ctx context.Context, customerID string, in dto.ListLoansRequest) (*dto.LoanPageResponse, error) {
	page, pageSize := uc.normalizePage(in.Page, in.PageSize)
	filter := repository.LoanFilter{
		NumberOfInstallments: in.NumberOfInstallments,
		Paid:                 in.Paid,
	}
	result, err := uc.loanRepo.ListByCustomer(ctx, customerID, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listar préstamos: %w", err)
	}
	items := make([]dto.LoanResponse, 0, len(result.Items))
	for _, l := range result.Items {
		items = append(items, uc.toLoanResponse(l))
	}
	return &dto.LoanPageResponse{
		Items: items,
		Page:  dto.NewPageResponse(page, pageSize, result.Total),
	}, nil
}

// GetInstallments devuelve las cuotas del préstamo ordenadas por vencimiento.
func (uc *UseCase) GetInstallments(ctx context.Context, customerID, loanID string) ([]dto.InstallmentResponse, error) {
	loan, err := findLoan(ctx, uc.loanRepo, customerID, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InstallmentResponse, 0, len(loan.Installments))
	for _, inst := range loan.Installments {
		out = append(out, uc.toInstallmentResponse(inst))
	}
	return out, nil
}

// PayLoan aplica un pago al préstamo. Las cuotas pagadas, el flag del préstamo y el crédito
// usado del cliente se confirman en la misma transacción.
func (uc *UseCase) PayLoan(ctx context.Context, customerID, loanID string, in dto.PayLoanRequest) (*dto.PayLoanResponse, error) {
	rawAmount := in.Amount.Raw()
	if _, err := lending.ValidatePaymentAmount(rawAmount); err != nil {
		return nil, err
	}

	var result lending.PaymentResult
	err := uc.tx.RunLending(ctx, func(customerRepo repository.CustomerRepository, loanRepo repository.LoanRepository) error {
		customer, err := lockCustomer(ctx, customerRepo, customerID)
		if err != nil {
			return err
		}
		loan, err := findLoan(ctx, loanRepo, customerID, loanID)
		if err != nil {
			return err
		}
		ledger := lending.NewCreditLedger(customer)
		result, err = uc.allocator.Allocate(ledger, loan, rawAmount, uc.clock.Today())
		if err != nil {
			return err
		}
		if result.InstallmentsPaid == 0 {
			return nil
		}
		if err := loanRepo.UpdatePayment(ctx, loan); err != nil {
			return fmt.Errorf("guardar pago: %w", err)
		}
		if err := customerRepo.UpdateCreditUsage(ctx, customer.ID, customer.UsedCreditLimit); err != nil {
			return fmt.Errorf("actualizar crédito usado: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.InstallmentsPaid > 0 {
		uc.metrics.PaymentApplied(result.InstallmentsPaid, result.TotalAmountSpent)
	}
	log.Info().
		Str("customer_id", customerID).
		Str("loan_id", loanID).
		Int("installments_paid", result.InstallmentsPaid).
		Str("amount_spent", result.TotalAmountSpent.String()).
		Bool("loan_paid", result.LoanPaidCompletely).
		Msg("pago aplicado")

	return &dto.PayLoanResponse{
		NumberOfInstallmentsPaid: result.InstallmentsPaid,
		TotalAmountSpent:         uc.formatter.Format(result.TotalAmountSpent),
		LoanPaidCompletely:       result.LoanPaidCompletely,
	}, nil
}

// Statement genera el estado de cuenta en PDF. Devuelve los bytes y un nombre de archivo sugerido.
func (uc *UseCase) Statement(ctx context.Context, customerID, loanID string) ([]byte, string, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", &domain.NotFoundError{Resource: "cliente", Key: "id: " + customerID}
	}
	loan, err := findLoan(ctx, uc.loanRepo, customerID, loanID)
	if err != nil {
		return nil, "", err
	}

	var unpaid []decimal.Decimal
	for _, inst := range loan.Installments {
		if !inst.Paid {
			unpaid = append(unpaid, inst.Amount)
		}
	}
	outstanding := money.Sum(unpaid...)
	data := StatementData{
		Customer:    customer,
		Loan:        uc.toLoanResponse(loan),
		Outstanding: uc.formatter.Format(outstanding),
		GeneratedAt: uc.clock.Now(),
	}
	pdfBytes, err := uc.generator.GenerateLoanStatement(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("generar estado de cuenta: %w", err)
	}
	return pdfBytes, fmt.Sprintf("prestamo-%s.pdf", loan.ID), nil
}

func (uc *UseCase) normalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = uc.cfg.DefaultPageSize
	}
	if pageSize > uc.cfg.MaxPageSize {
		pageSize = uc.cfg.MaxPageSize
	}
	return page, pageSize
}

func lockCustomer(ctx context.Context, repo repository.CustomerRepository, customerID string) (*entity.Customer, error) {
	customer, err := repo.GetForUpdate(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("bloquear cliente: %w", err)
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: "id: " + customerID}
	}
	return customer, nil
}

func findLoan(ctx context.Context, repo repository.LoanRepository, customerID, loanID string) (*entity.Loan, error) {
	loan, err := repo.GetByCustomerAndID(ctx, customerID, loanID)
	if err != nil {
		return nil, fmt.Errorf("obtener préstamo: %w", err)
	}
	if loan == nil {
		return nil, &domain.NotFoundError{Resource: "préstamo", Key: "id: " + loanID}
	}
	return loan, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return RejectInvalidRequest
	case errors.Is(err, domain.ErrInsufficientLimit):
		return RejectInsufficientLimit
	case errors.Is(err, domain.ErrNotFound):
		return RejectCustomerNotFound
	}
	return ""
}
