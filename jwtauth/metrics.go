package jwtauth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcomeNoToken labels requests from which no token could be extracted.
const outcomeNoToken = "NoToken"

var (
	// AuthenticationsTotal counts authentication attempts by transport and
	// outcome.
	//
	// Example usage:
	// jwtauth.AuthenticationsTotal.WithLabelValues("http", "Verified").Inc()
	AuthenticationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jwtauth_authentications_total",
			Help: "Number of token authentication attempts.",
		},
		[]string{"transport", "outcome"},
	)

	// AuthenticationDuration measures the time spent extracting and
	// verifying a token.
	AuthenticationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jwtauth_authentication_duration_seconds",
			Help:    "Time spent authenticating a request token.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"transport"},
	)
)

func observeAuthentication(transport string, outcome Outcome, missing bool, latency time.Duration) {
	label := outcome.String()
	if missing {
		label = outcomeNoToken
	}
	AuthenticationsTotal.WithLabelValues(transport, label).Inc()
	AuthenticationDuration.WithLabelValues(transport).Observe(latency.Seconds())
}
