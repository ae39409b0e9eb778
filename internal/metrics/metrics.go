// Package metrics exposes Prometheus counters for tracker activity.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lostfound"

// Metrics holds the tracker's collectors and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	itemsCreated  *prometheus.CounterVec
	itemsReturned prometheus.Counter
	corruptLoads  prometheus.Counter
	largeImages   prometheus.Counter
	imageFailures prometheus.Counter
	contactCopies prometheus.Counter
}

// New creates a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		itemsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_created_total",
			Help:      "Items added, by type.",
		}, []string{"type"}),
		itemsReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_returned_total",
			Help:      "Items marked as returned.",
		}),
		corruptLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_corrupt_loads_total",
			Help:      "Loads that found a malformed item collection and fell back to empty.",
		}),
		largeImages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "large_images_total",
			Help:      "Submitted images above the advisory size threshold.",
		}),
		imageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_read_failures_total",
			Help:      "Image reads that failed and were dropped from the item.",
		}),
		contactCopies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_copies_total",
			Help:      "Contacts copied to the clipboard.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.itemsCreated,
		m.itemsReturned,
		m.corruptLoads,
		m.largeImages,
		m.imageFailures,
		m.contactCopies,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ItemCreated(itemType string) {
	if m == nil {
		return
	}
	m.itemsCreated.WithLabelValues(itemType).Inc()
}

func (m *Metrics) ItemReturned() {
	if m == nil {
		return
	}
	m.itemsReturned.Inc()
}

func (m *Metrics) CorruptLoad() {
	if m == nil {
		return
	}
	m.corruptLoads.Inc()
}

func (m *Metrics) LargeImage() {
	if m == nil {
		return
	}
	m.largeImages.Inc()
}

func (m *Metrics) ImageFailure() {
	if m == nil {
		return
	}
	m.imageFailures.Inc()
}

func (m *Metrics) ContactCopied() {
	if m == nil {
		return
	}
	m.contactCopies.Inc()
}
