// Package metrics expone contadores Prometheus de originación y pagos de préstamos.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/application/loan"
)

var _ loan.Metrics = (*LoanMetrics)(nil)

// LoanMetrics implementa loan.Metrics sobre un registry propio.
type LoanMetrics struct {
	registry         *prometheus.Registry
	originations     prometheus.Counter
	originatedAmount prometheus.Counter
	rejections       *prometheus.CounterVec
	installmentsPaid prometheus.Counter
	paymentAmount    prometheus.Counter
}

// NewLoanMetrics registra los contadores junto con los collectors de proceso y runtime de Go.
func NewLoanMetrics(namespace string) *LoanMetrics {
	m := &LoanMetrics{
		registry: prometheus.NewRegistry(),
		originations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_originations_total",
			Help:      "Préstamos originados.",
		}),
		originatedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_originated_amount_total",
			Help:      "Suma del total a devolver de los préstamos originados.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_origination_rejections_total",
			Help:      "Solicitudes de préstamo rechazadas por motivo.",
		}, []string{"reason"}),
		installmentsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_installments_paid_total",
			Help:      "Cuotas pagadas.",
		}),
		paymentAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_payment_amount_total",
			Help:      "Suma de montos cobrados (con descuento o recargo aplicado).",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.originations, m.originatedAmount, m.rejections, m.installmentsPaid, m.paymentAmount,
	)
	return m
}

func (m *LoanMetrics) LoanOriginated(totalAmount decimal.Decimal) {
	m.originations.Inc()
	m.originatedAmount.Add(totalAmount.InexactFloat64())
}

func (m *LoanMetrics) OriginationRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *LoanMetrics) PaymentApplied(installmentsPaid int, amountSpent decimal.Decimal) {
	m.installmentsPaid.Add(float64(installmentsPaid))
	m.paymentAmount.Add(amountSpent.InexactFloat64())
}

// Handler devuelve el handler HTTP de /metrics para este registry.
func (m *LoanMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expone el registry (para pruebas o collectors adicionales).
func (m *LoanMetrics) Registry() *prometheus.Registry { return m.registry }
