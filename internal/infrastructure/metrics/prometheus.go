// Package metrics expone los contadores de negocio y de persistencia en Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/saeron-inventario/internal/application/ports"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
)

var (
	_ ports.Metrics        = (*Metrics)(nil)
	_ state.CommitObserver = (*Metrics)(nil)
)

// Metrics contadores Prometheus de la aplicación.
type Metrics struct {
	SalesRecorded    prometheus.Counter
	SalesAmount      prometheus.Counter
	ClosingsCreated  prometheus.Counter
	ClosingsRejected *prometheus.CounterVec // labels: reason
	StateCommits     *prometheus.CounterVec // labels: namespace, result
}

// NewMetrics registra los contadores en registry (nil usa el registro por defecto).
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		SalesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "saeron_sales_recorded_total",
			Help: "Ventas registradas",
		}),
		SalesAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "saeron_sales_amount_krw_total",
			Help: "Importe acumulado de ventas registradas (KRW)",
		}),
		ClosingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "saeron_closings_created_total",
			Help: "Cierres mensuales creados",
		}),
		ClosingsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "saeron_closings_rejected_total",
			Help: "Intentos de cierre rechazados por motivo",
		}, []string{"reason"}),
		StateCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "saeron_state_commits_total",
			Help: "Escrituras de namespaces del estado por resultado (ok, conflict, error)",
		}, []string{"namespace", "result"}),
	}
}

func (m *Metrics) SaleRecorded(amount int64) {
	m.SalesRecorded.Inc()
	if amount > 0 {
		m.SalesAmount.Add(float64(amount))
	}
}

func (m *Metrics) ClosingCreated() { m.ClosingsCreated.Inc() }

func (m *Metrics) ClosingRejected(reason string) { m.ClosingsRejected.WithLabelValues(reason).Inc() }

// ObserveCommit cuenta cada namespace escrito por el Store.
func (m *Metrics) ObserveCommit(namespaces []string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrConflict):
		result = "conflict"
	case err != nil:
		result = "error"
	}
	for _, ns := range namespaces {
		m.StateCommits.WithLabelValues(ns, result).Inc()
	}
}
