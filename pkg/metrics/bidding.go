package metrics

import "github.com/prometheus/client_golang/prometheus"

// BiddingMetrics counts accepted and rejected bids per sale context.
type BiddingMetrics struct {
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewBiddingMetrics registers the bid counters on the provided registerer.
func NewBiddingMetrics(reg prometheus.Registerer) *BiddingMetrics {
	if reg == nil {
		return &BiddingMetrics{}
	}
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bids_accepted_total",
		Help: "Bids accepted, by sale context.",
	}, []string{"context"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bids_rejected_total",
		Help: "Bids rejected, by sale context and reason.",
	}, []string{"context", "reason"})
	reg.MustRegister(accepted, rejected)
	return &BiddingMetrics{
		accepted: accepted,
		rejected: rejected,
	}
}

// IncAccepted counts an accepted bid for the given sale context
// ("auction" or "catalog_lot").
func (b *BiddingMetrics) IncAccepted(context string) {
	if b == nil || b.accepted == nil {
		return
	}
	b.accepted.WithLabelValues(normalizeLabel(context)).Inc()
}

// IncRejected counts a rejected bid with the validation reason.
func (b *BiddingMetrics) IncRejected(context, reason string) {
	if b == nil || b.rejected == nil {
		return
	}
	b.rejected.WithLabelValues(normalizeLabel(context), normalizeLabel(reason)).Inc()
}
