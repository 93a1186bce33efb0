package vyosclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vyos_dhcp",
		Subsystem: "router_api",
		Name:      "requests_total",
		Help:      "Requests sent to the VyOS API by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vyos_dhcp",
		Subsystem: "router_api",
		Name:      "request_duration_seconds",
		Help:      "Round-trip latency of VyOS API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

func observeRequest(endpoint vyosmodels.Endpoint, resp vyosmodels.Response, err error, took time.Duration) {
	outcome := outcomeSuccess
	switch {
	case err != nil:
		outcome = outcomeError
	case !resp.Success:
		outcome = outcomeRejected
	}
	requestsTotal.WithLabelValues(string(endpoint), outcome).Inc()
	requestDuration.WithLabelValues(string(endpoint)).Observe(took.Seconds())
}
