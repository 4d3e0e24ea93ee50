package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Loan-api/internal/infrastructure/metrics"
)

func TestLoanMetrics_Contadores(t *testing.T) {
	m := metrics.NewLoanMetrics("loanapi")

	m.LoanOriginated(decimal.RequireFromString("66"))
	m.OriginationRejected("insufficient_limit")
	m.OriginationRejected("insufficient_limit")
	m.OriginationRejected("invalid_request")
	m.PaymentApplied(3, decimal.RequireFromString("31.99"))

	expected := `
# HELP loanapi_loan_origination_rejections_total Solicitudes de préstamo rechazadas por motivo.
# TYPE loanapi_loan_origination_rejections_total counter
loanapi_loan_origination_rejections_total{reason="insufficient_limit"} 2
loanapi_loan_origination_rejections_total{reason="invalid_request"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "loanapi_loan_origination_rejections_total"))

	count, err := testutil.GatherAndCount(m.Registry(), "loanapi_loan_originations_total", "loanapi_loan_installments_paid_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoanMetrics_Handler(t *testing.T) {
	m := metrics.NewLoanMetrics("loanapi")
	m.PaymentApplied(1, decimal.RequireFromString("11"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "loanapi_loan_installments_paid_total 1")
	assert.Contains(t, rec.Body.String(), "loanapi_loan_payment_amount_total 11")
}
