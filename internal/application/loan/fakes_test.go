package loan_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/application/loan"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
)

// memStore persiste clientes y préstamos en memoria. RunLending restaura el estado previo
// si la función devuelve error, como haría un rollback.
type memStore struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	loans     map[string]*entity.Loan
	seq       int
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{customers: map[string]*entity.Customer{}, loans: map[string]*entity.Loan{}}
}

func (s *memStore) RunLending(ctx context.Context, fn func(repository.CustomerRepository, repository.LoanRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers, loans := s.snapshot()
	if err := fn(memCustomers{s}, memLoans{s}); err != nil {
		s.customers, s.loans = customers, loans
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func (s *memStore) snapshot() (map[string]*entity.Customer, map[string]*entity.Loan) {
	customers := make(map[string]*entity.Customer, len(s.customers))
	for k, c := range s.customers {
		cp := *c
		customers[k] = &cp
	}
	loans := make(map[string]*entity.Loan, len(s.loans))
	for k, l := range s.loans {
		loans[k] = cloneLoan(l)
	}
	return customers, loans
}

func cloneLoan(l *entity.Loan) *entity.Loan {
	cp := *l
	cp.Installments = make([]*entity.Installment, len(l.Installments))
	for i, inst := range l.Installments {
		ic := *inst
		cp.Installments[i] = &ic
	}
	return &cp
}

func (s *memStore) addCustomer(c *entity.Customer) {
	s.customers[c.ID] = c
}

func (s *memStore) customer(id string) *entity.Customer { return s.customers[id] }

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type memCustomers struct{ s *memStore }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r memCustomers) GetByUsername(_ context.Context, username string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCustomers) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r memCustomers) UpdateCreditUsage(_ context.Context, id string, used decimal.NullDecimal) error {
	c, ok := r.s.customers[id]
	if !ok {
		return fmt.Errorf("cliente %s no existe", id)
	}
	c.UsedCreditLimit = used
	return nil
}

type memLoans struct{ s *memStore }

func (r memLoans) Create(_ context.Context, l *entity.Loan) error {
	l.ID = r.s.nextID("loan")
	for _, inst := range l.Installments {
		inst.ID = r.s.nextID("inst")
		inst.LoanID = l.ID
	}
	r.s.loans[l.ID] = cloneLoan(l)
	return nil
}

func (r memLoans) GetByCustomerAndID(_ context.Context, customerID, loanID string) (*entity.Loan, error) {
	l, ok := r.s.loans[loanID]
	if !ok || l.CustomerID != customerID {
		return nil, nil
	}
	return cloneLoan(l), nil
}

func (r memLoans) ListByCustomer(_ context.Context, customerID string, filter repository.LoanFilter, page, pageSize int) (*repository.LoanPage, error) {
	var all []*entity.Loan
	for _, l := range r.s.loans {
		if l.CustomerID != customerID {
			continue
		}
		if filter.NumberOfInstallments != nil && l.NumberOfInstallments != *filter.NumberOfInstallments {
			continue
		}
		if filter.Paid != nil && l.Paid != *filter.Paid {
			continue
		}
		all = append(all, cloneLoan(l))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	out := &repository.LoanPage{Page: page, PageSize: pageSize, Total: len(all)}
	from := page * pageSize
	if from < len(all) {
		to := from + pageSize
		if to > len(all) {
			to = len(all)
		}
		out.Items = all[from:to]
	}
	return out, nil
}

func (r memLoans) UpdatePayment(_ context.Context, l *entity.Loan) error {
	r.s.loans[l.ID] = cloneLoan(l)
	return nil
}

type fixedFormatter struct{}

func (fixedFormatter) Format(d decimal.Decimal) string { return d.StringFixed(2) }

type recordingMetrics struct {
	originated  int
	rejections  map[string]int
	paid        int
	amountSpent decimal.Decimal
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{rejections: map[string]int{}}
}

func (m *recordingMetrics) LoanOriginated(decimal.Decimal)    { m.originated++ }
func (m *recordingMetrics) OriginationRejected(reason string) { m.rejections[reason]++ }
func (m *recordingMetrics) PaymentApplied(n int, spent decimal.Decimal) {
	m.paid += n
	m.amountSpent = m.amountSpent.Add(spent)
}

type stubGenerator struct {
	last loan.StatementData
}

func (g *stubGenerator) GenerateLoanStatement(_ context.Context, data loan.StatementData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-stub"), nil
}
