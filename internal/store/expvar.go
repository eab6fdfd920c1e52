package store

import (
	"context"
	"expvar"
	"fmt"
	"sync/atomic"
	"time"
)

var expvarSeq atomic.Uint64

// ExpvarMetricsRecorder publishes per-operation counters through expvar for
// hosts that want process-local metrics without a scrape target. Each
// operation contributes "<op>.success" and "<op>.error" counters plus a
// "<op>.seconds" running duration total to a single published map.
type ExpvarMetricsRecorder struct {
	name string
	vars *expvar.Map
}

// NewExpvarMetricsRecorder publishes a recorder map under name; an empty name
// gets a unique generated one so repeated construction never panics.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("dealerdesk_store_metrics_%d", expvarSeq.Add(1))
	}
	return &ExpvarMetricsRecorder{name: name, vars: expvar.NewMap(name)}
}

// Name returns the expvar key the recorder publishes under.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.vars.Add(operation+"."+status, 1)
	r.vars.AddFloat(operation+".seconds", duration.Seconds())
}
