// Package metrics defines Prometheus metrics for the API server
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NoncesIssued counts sign-in challenges handed out
	NoncesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_nonces_issued_total",
			Help: "Total number of sign-in nonces issued",
		},
	)

	// NonceClaims counts claim attempts by outcome (won, lost)
	NonceClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_nonce_claims_total",
			Help: "Total number of nonce claim attempts",
		},
		[]string{"outcome"},
	)

	// LoginAttempts counts signature verification attempts by result
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login verification attempts",
		},
		[]string{"result"},
	)

	// SessionsIssued counts session tokens minted
	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	// ModerationDecisions counts moderation verdicts by decision
	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Total number of moderation classifier decisions",
		},
		[]string{"decision"},
	)

	// RequestDuration tracks HTTP request latency by route and status
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Login attempt results
const (
	LoginResultSuccess          = "success"
	LoginResultInvalidSignature = "invalid_signature"
	LoginResultInvalidNonce     = "invalid_nonce"
	LoginResultError            = "error"
)

// Nonce claim outcomes
const (
	ClaimOutcomeWon  = "won"
	ClaimOutcomeLost = "lost"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request duration per chi route pattern. Patterns are
// used instead of raw paths so /events/42 and /events/43 share a series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		RequestDuration.WithLabelValues(
			r.Method,
			route,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}
