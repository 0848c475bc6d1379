package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RentalMetrics holds all Prometheus metrics for the rental module
type RentalMetrics struct {
	// Marketplace metrics
	AppsRegistered      prometheus.Counter
	SubscriptionsOpened prometheus.Counter
	SubscriptionsClosed *prometheus.CounterVec

	// Auction metrics
	BidsPlaced  *prometheus.CounterVec
	BidsClaimed prometheus.Counter

	// Liveness metrics
	ReportsAccepted *prometheus.CounterVec
	RestartsFlagged *prometheus.CounterVec

	// Escrow metrics
	EscrowDeposits *prometheus.CounterVec
	WorkerPayouts  *prometheus.CounterVec

	// Attestation metrics
	AttestationFailures *prometheus.CounterVec

	// Market gauges refreshed in the end blocker
	OpenSubscriptions     prometheus.Gauge
	AssignedSubscriptions prometheus.Gauge
	EscrowLocked          prometheus.Gauge
}

var (
	rentalMetricsOnce sync.Once
	rentalMetrics     *RentalMetrics
)

// NewRentalMetrics creates and registers rental metrics (singleton pattern)
func NewRentalMetrics() *RentalMetrics {
	rentalMetricsOnce.Do(func() {
		rentalMetrics = &RentalMetrics{
			// Marketplace metrics
			AppsRegistered: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "apps_registered_total",
					Help:      "Total app listings registered",
				},
			),
			SubscriptionsOpened: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "subscriptions_opened_total",
					Help:      "Total subscriptions opened",
				},
			),
			SubscriptionsClosed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "subscriptions_closed_total",
					Help:      "Total subscriptions closed",
				},
				[]string{"reason"},
			),

			// Auction metrics
			BidsPlaced: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "bids_placed_total",
					Help:      "Total bids placed on open subscriptions",
				},
				[]string{"outcome"},
			),
			BidsClaimed: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "bids_claimed_total",
					Help:      "Total winning bids claimed",
				},
			),

			// Liveness metrics
			ReportsAccepted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "reports_accepted_total",
					Help:      "Total liveness reports accepted",
				},
				[]string{"result"},
			),
			RestartsFlagged: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "restarts_flagged_total",
					Help:      "Subscriptions flagged for restart",
				},
				[]string{"reason"},
			),

			// Escrow metrics
			EscrowDeposits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "escrow_deposits_total",
					Help:      "Total coins deposited into escrow",
				},
				[]string{"denom"},
			),
			WorkerPayouts: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "worker_payouts_total",
					Help:      "Total coins paid out to workers",
				},
				[]string{"denom"},
			),

			// Attestation metrics
			AttestationFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "attestation_failures_total",
					Help:      "Worker attestation verification failures",
				},
				[]string{"reason"},
			),

			// Market gauges
			OpenSubscriptions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "open_subscriptions",
					Help:      "Subscriptions that are not closed",
				},
			),
			AssignedSubscriptions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "assigned_subscriptions",
					Help:      "Open subscriptions with a claimed executor",
				},
			),
			EscrowLocked: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "vaultmesh",
					Subsystem: "rental",
					Name:      "escrow_locked",
					Help:      "Total balance held across escrow accounts",
				},
			),
		}
	})
	return rentalMetrics
}

// GetRentalMetrics returns the singleton rental metrics instance
func GetRentalMetrics() *RentalMetrics {
	if rentalMetrics == nil {
		return NewRentalMetrics()
	}
	return rentalMetrics
}

// RecordAttestationFailure counts one failed attestation check
func (m *RentalMetrics) RecordAttestationFailure(reason string) {
	if m == nil {
		return
	}
	m.AttestationFailures.WithLabelValues(reason).Inc()
}
