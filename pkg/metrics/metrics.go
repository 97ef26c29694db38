package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SpecUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "specdock", Name: "spec_uploads_total", Help: "Number of spec uploads by result (created, rejected, failed)."},
		[]string{"result"},
	)
	SpecRenders = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "specdock", Name: "spec_renders_total", Help: "Number of documentation page renders."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "specdock", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "specdock", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SpecUploads)
	reg.MustRegister(SpecRenders)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
