// Package metrics expone los colectores Prometheus del motor de inventario.
package metrics

import (
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/prometheus/client_golang/prometheus"
)

var _ inventory.Metrics = (*Recorder)(nil)

// Recorder implementa inventory.Metrics.
type Recorder struct {
	receipts        *prometheus.CounterVec
	receiptDuration *prometheus.HistogramVec
	ledgerEntries   prometheus.Counter
	movements       *prometheus.CounterVec
	divergences     prometheus.Gauge
}

// NewRecorder registra los colectores en reg; nil usa el registerer por defecto.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "receipts_total",
			Help:      "Recepciones de órdenes de compra por resultado.",
		}, []string{"outcome"}),
		receiptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stock_ledger",
			Name:      "receipt_duration_seconds",
			Help:      "Duración de la transacción de recepción.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		ledgerEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "ledger_entries_total",
			Help:      "Movimientos escritos por recepciones confirmadas.",
		}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "movements_total",
			Help:      "Movimientos manuales por tipo y resultado.",
		}, []string{"type", "outcome"}),
		divergences: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stock_ledger",
			Name:      "integrity_divergences",
			Help:      "Divergencias encontradas en la última verificación.",
		}),
	}
	reg.MustRegister(r.receipts, r.receiptDuration, r.ledgerEntries, r.movements, r.divergences)
	return r
}

// ObserveReceipt registra el resultado de una recepción.
func (r *Recorder) ObserveReceipt(outcome string, movements int, elapsed time.Duration) {
	r.receipts.WithLabelValues(outcome).Inc()
	r.receiptDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == inventory.OutcomeCommitted && movements > 0 {
		r.ledgerEntries.Add(float64(movements))
	}
}

// ObserveMovement registra un movimiento manual.
func (r *Recorder) ObserveMovement(movementType, outcome string) {
	r.movements.WithLabelValues(movementType, outcome).Inc()
}

// SetDivergences fija el número de divergencias de la última verificación.
func (r *Recorder) SetDivergences(n int) {
	r.divergences.Set(float64(n))
}
