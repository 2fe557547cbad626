// Package metrics wires codec and transfer-session statistics into
// Prometheus collectors, active only when a caller opts in (the
// stats_mode flag from the CLI surface). package transfer imports this
// package directly and renders it to text when a Session's codec has
// StatsMode set; ring, codec, and container remain independent of it.
package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ringcast/ringcast/codec"
)

// Registry groups the counters this package exposes under one
// prometheus.Registry, so a caller can serve them from a single
// /metrics handler without touching the global default registry.
type Registry struct {
	reg *prometheus.Registry

	symbolsSkipped   prometheus.Counter
	directInfoUsed   prometheus.Counter
	collisionsSeen   prometheus.Counter
	errorsCorrectedH prometheus.Counter
	errorsCorrectedV prometheus.Counter
	hashMismatches   prometheus.Counter
}

// NewRegistry builds a Registry with all counters registered at zero.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		symbolsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "symbols_skipped_total",
			Help: "Symbols sent via the unrecoverable random-substitution fallback.",
		}),
		directInfoUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "direct_info_used_total",
			Help: "Symbols sent via the direct-info channel instead of the function table.",
		}),
		collisionsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "collisions_seen_total",
			Help: "Encoded symbols that took the collision fallback because the function table produced a duplicate output.",
		}),
		errorsCorrectedH: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "errors_corrected_h_total",
			Help: "Single-bit errors corrected in the h half of a hypothesis-dialect pair.",
		}),
		errorsCorrectedV: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "errors_corrected_v_total",
			Help: "Single-bit errors corrected in the v half of a hypothesis-dialect pair.",
		}),
		hashMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringcast", Subsystem: "codec", Name: "hash_mismatches_total",
			Help: "Message-layer SHA-256 verification failures (non-fatal).",
		}),
	}
	r.reg.MustRegister(
		r.symbolsSkipped, r.directInfoUsed, r.collisionsSeen,
		r.errorsCorrectedH, r.errorsCorrectedV, r.hashMismatches,
	)
	return r
}

// Gatherer exposes the underlying registry for an HTTP handler
// (promhttp.HandlerFor) without leaking the concrete type.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Observe adds the delta between prev and cur to each counter. Callers
// poll codec.Stats() snapshots (themselves backed by atomic.Int64
// counters) and pass consecutive snapshots here; counters only ever
// move forward, matching Stats' own monotonic semantics.
func (r *Registry) Observe(prev, cur codec.Stats) {
	addDelta(r.symbolsSkipped, prev.SymbolsSkipped, cur.SymbolsSkipped)
	addDelta(r.directInfoUsed, prev.DirectInfoUsed, cur.DirectInfoUsed)
	addDelta(r.collisionsSeen, prev.CollisionsSeen, cur.CollisionsSeen)
	addDelta(r.errorsCorrectedH, prev.ErrorsCorrectedH, cur.ErrorsCorrectedH)
	addDelta(r.errorsCorrectedV, prev.ErrorsCorrectedV, cur.ErrorsCorrectedV)
	addDelta(r.hashMismatches, prev.HashMismatches, cur.HashMismatches)
}

func addDelta(c prometheus.Counter, prev, cur int64) {
	if d := cur - prev; d > 0 {
		c.Add(float64(d))
	}
}

// WriteText renders the registry's current counters in the Prometheus
// text exposition format to w, via the same promhttp.Handler a real
// /metrics endpoint would serve, without starting a listener — the CLI
// surface's --stats flag calls this to dump a snapshot to stderr.
func (r *Registry) WriteText(w io.Writer) error {
	h := promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	_, err := io.Copy(w, rec.Body)
	return err
}
