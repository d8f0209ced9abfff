package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the plants module.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SortOrderFetches  *prometheus.CounterVec
	SortOrderMemoHits prometheus.Counter
	Recomputations    prometheus.Counter
	ConflatedDrops    prometheus.Counter
	SortDuration      prometheus.Histogram
	Refreshes         *prometheus.CounterVec
	RefreshDuration   prometheus.Histogram
	RefreshesCanceled prometheus.Counter
}

// New creates and registers the plants metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SortOrderFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sunflower_sort_order_fetches_total",
			Help: "Remote sort order fetches by outcome",
		}, []string{"outcome"}),
		SortOrderMemoHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunflower_sort_order_memo_hits_total",
			Help: "Sort order lookups served from the in-process memo",
		}),
		Recomputations: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunflower_plant_list_recomputations_total",
			Help: "Sorted plant list recomputations",
		}),
		ConflatedDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunflower_plant_list_conflated_total",
			Help: "Plant list values superseded before a subscriber consumed them",
		}),
		SortDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunflower_plant_list_sort_duration_seconds",
			Help:    "Time spent sorting the plant list",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sunflower_refreshes_total",
			Help: "Plant cache refreshes by outcome",
		}, []string{"outcome"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunflower_refresh_duration_seconds",
			Help:    "Duration of plant cache refreshes",
			Buckets: prometheus.DefBuckets,
		}),
		RefreshesCanceled: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunflower_refreshes_superseded_total",
			Help: "In-flight refreshes canceled by a newer filter selection",
		}),
	}
}

func (m *Metrics) RecordSortOrderFetch(outcome string) {
	if m == nil {
		return
	}
	m.SortOrderFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSortOrderMemoHits() {
	if m == nil {
		return
	}
	m.SortOrderMemoHits.Inc()
}

func (m *Metrics) ObserveRecomputation(seconds float64) {
	if m == nil {
		return
	}
	m.Recomputations.Inc()
	m.SortDuration.Observe(seconds)
}

func (m *Metrics) AddConflated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ConflatedDrops.Add(float64(n))
}

func (m *Metrics) ObserveRefresh(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(outcome).Inc()
	m.RefreshDuration.Observe(seconds)
}

func (m *Metrics) IncrementRefreshesCanceled() {
	if m == nil {
		return
	}
	m.RefreshesCanceled.Inc()
}
