// Package metrics exposes the process Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OperationsTotal counts ledger operations by module and outcome.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "govledger",
		Name:      "operations_total",
		Help:      "Ledger operations processed, by module and outcome.",
	}, []string{"module", "operation", "outcome"})

	// DomainErrorsTotal counts rejections by module and numeric error code.
	DomainErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "govledger",
		Name:      "domain_errors_total",
		Help:      "Domain rejections, by module and error code.",
	}, []string{"module", "code"})

	// ChainHeight mirrors the current block height register.
	ChainHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "govledger",
		Name:      "chain_height",
		Help:      "Current operator-advanced block height.",
	})
)

// Handler serves the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
