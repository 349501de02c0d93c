package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EconomyOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_operations_total",
			Help: "Economy operations by kind and result",
		},
		[]string{"op", "result"},
	)
	GambleOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamble_outcomes_total",
			Help: "Gamble results by tier",
		},
		[]string{"tier"},
	)
	CoinsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_coins_moved_total",
			Help: "Absolute coins credited or debited by operation",
		},
		[]string{"op", "direction"},
	)
)

func init() {
	prometheus.MustRegister(EconomyOps)
	prometheus.MustRegister(GambleOutcomes)
	prometheus.MustRegister(CoinsMoved)
}

// observe records an operation outcome. Typed user failures count as "rejected".
func observe(op string, err error) {
	switch {
	case err == nil:
		EconomyOps.WithLabelValues(op, "ok").Inc()
	case isUserError(err):
		EconomyOps.WithLabelValues(op, "rejected").Inc()
	default:
		EconomyOps.WithLabelValues(op, "error").Inc()
	}
}

func observeCoins(op string, delta int64) {
	switch {
	case delta > 0:
		CoinsMoved.WithLabelValues(op, "credit").Add(float64(delta))
	case delta < 0:
		CoinsMoved.WithLabelValues(op, "debit").Add(float64(-delta))
	}
}
