// Package metrics exposes Prometheus instrumentation for the fiberplant
// engine. Stores take an optional *Registry; a nil registry disables
// instrumentation without branching at every call site.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the engine
type Registry struct {
	registry *prometheus.Registry

	// Splice continuity metrics
	SplicesCreated      prometheus.Counter
	SplicesUpdated      prometheus.Counter
	SplicesDeleted      prometheus.Counter
	BatchPairsGenerated prometheus.Counter
	BatchPairsSkipped   prometheus.Counter

	// Network graph metrics
	ElementsCreated   *prometheus.CounterVec
	ElementsDeleted   prometheus.Counter
	ConnectsRejected  prometheus.Counter
	CascadeDeleteSize prometheus.Histogram
	LayoutRuns        prometheus.Counter
}

// NewRegistry creates a metrics registry with all engine metrics registered
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.SplicesCreated = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_splices_created_total",
		Help: "Total number of splice records created",
	})
	r.SplicesUpdated = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_splices_updated_total",
		Help: "Total number of splice records updated in place",
	})
	r.SplicesDeleted = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_splices_deleted_total",
		Help: "Total number of splice records deleted",
	})
	r.BatchPairsGenerated = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_batch_pairs_generated_total",
		Help: "Total number of splice pairs proposed by batch generation",
	})
	r.BatchPairsSkipped = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_batch_pairs_skipped_total",
		Help: "Total number of batch pairs skipped because the pair already existed",
	})

	r.ElementsCreated = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "fiberplant_elements_created_total",
		Help: "Total number of network elements created",
	}, []string{"type"})
	r.ElementsDeleted = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_elements_deleted_total",
		Help: "Total number of network elements deleted (including cascades)",
	})
	r.ConnectsRejected = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_connects_rejected_total",
		Help: "Total number of rejected graph connection attempts",
	})
	r.CascadeDeleteSize = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "fiberplant_cascade_delete_size",
		Help:    "Number of descendants removed per cascading delete",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})
	r.LayoutRuns = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "fiberplant_layout_runs_total",
		Help: "Total number of auto-layout computations",
	})

	return r
}

// Prometheus returns the underlying registry for scraping or test
// gathering.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Nil-safe increment helpers. Stores hold a *Registry that may be nil.

// IncSpliceCreated increments the created-splice counter
func (r *Registry) IncSpliceCreated() {
	if r != nil {
		r.SplicesCreated.Inc()
	}
}

// IncSpliceUpdated increments the updated-splice counter
func (r *Registry) IncSpliceUpdated() {
	if r != nil {
		r.SplicesUpdated.Inc()
	}
}

// AddSplicesDeleted adds to the deleted-splice counter
func (r *Registry) AddSplicesDeleted(n int) {
	if r != nil {
		r.SplicesDeleted.Add(float64(n))
	}
}

// AddBatchGenerated adds to the generated-pair counter
func (r *Registry) AddBatchGenerated(n int) {
	if r != nil {
		r.BatchPairsGenerated.Add(float64(n))
	}
}

// AddBatchSkipped adds to the skipped-pair counter
func (r *Registry) AddBatchSkipped(n int) {
	if r != nil {
		r.BatchPairsSkipped.Add(float64(n))
	}
}

// IncElementCreated increments the per-type element creation counter
func (r *Registry) IncElementCreated(elementType string) {
	if r != nil {
		r.ElementsCreated.WithLabelValues(elementType).Inc()
	}
}

// AddElementsDeleted adds to the element deletion counter
func (r *Registry) AddElementsDeleted(n int) {
	if r != nil {
		r.ElementsDeleted.Add(float64(n))
	}
}

// IncConnectRejected increments the rejected-connect counter
func (r *Registry) IncConnectRejected() {
	if r != nil {
		r.ConnectsRejected.Inc()
	}
}

// ObserveCascadeSize records the descendant count of one cascading delete
func (r *Registry) ObserveCascadeSize(descendants int) {
	if r != nil {
		r.CascadeDeleteSize.Observe(float64(descendants))
	}
}

// IncLayoutRun increments the layout-run counter
func (r *Registry) IncLayoutRun() {
	if r != nil {
		r.LayoutRuns.Inc()
	}
}
