package keeper

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "gasdistd"
	metricsSubsystem = "distributor"

	roundResultOK                = "ok"
	roundResultInsufficientFunds = "insufficient_funds"
	roundResultError             = "error"
)

// Metrics are the prometheus collectors of the distribution engine. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	rounds       *prometheus.CounterVec
	transfers    prometheus.Counter
	distributed  prometheus.Counter
	roundPayouts prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "rounds_total",
			Help:      "Distribution rounds by result.",
		}, []string{"result"}),
		transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "transfers_total",
			Help:      "Top-up transfers emitted by distribution rounds.",
		}),
		distributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "distributed_amount_total",
			Help:      "Sum of all top-up amounts in base denom units.",
		}),
		roundPayouts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "round_transfers",
			Help:      "Number of transfers per successful round.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.rounds, m.transfers, m.distributed, m.roundPayouts)
	return m
}

func (m *Metrics) observeRound(transfers int, total math.Uint) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(roundResultOK).Inc()
	m.transfers.Add(float64(transfers))
	f, _ := new(big.Float).SetInt(total.BigInt()).Float64()
	m.distributed.Add(f)
	m.roundPayouts.Observe(float64(transfers))
}

func (m *Metrics) observeFailure(result string) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(result).Inc()
}
