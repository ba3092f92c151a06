// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a small facade over Prometheus metric types: every
// call site asks for a named counter/gauge/histogram without caring
// whether metrics collection is currently enabled. Before
// InitializePrometheusMetrics runs, every meter is a no-op so the staking
// core can be driven in tests or a CLI one-shot without pulling in a
// Prometheus registry at all.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CountMeter is a monotonic counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter partitioned by a fixed label set.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a value that can move up or down.
type GaugeMeter interface {
	Add(int64)
}

// GaugeVecMeter is a gauge partitioned by a fixed label set.
type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// HistogramMeter records individual observations.
type HistogramMeter interface {
	Observe(int64)
}

// HistogramVecMeter records observations partitioned by a fixed label set.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// backend is the pluggable implementation behind the package-level
// Counter/Gauge/Histogram helpers: either defaultNoopMetrics() or, once
// InitializePrometheusMetrics runs, a *promMetrics registry.
type backend interface {
	counter(name string) CountMeter
	counterVec(name string, labels []string) CountVecMeter
	gauge(name string) GaugeMeter
	gaugeVec(name string, labels []string) GaugeVecMeter
	histogram(name string, buckets []float64) HistogramMeter
	histogramVec(name string, labels []string, buckets []float64) HistogramVecMeter
	httpHandler() http.Handler
}

var (
	mu      sync.RWMutex
	metrics backend = defaultNoopMetrics()
)

func current() backend {
	mu.RLock()
	defer mu.RUnlock()
	return metrics
}

// Counter returns (creating if necessary) the named counter.
func Counter(name string) CountMeter { return current().counter(name) }

// CounterVec returns the named counter partitioned by labels.
func CounterVec(name string, labels []string) CountVecMeter { return current().counterVec(name, labels) }

// Gauge returns the named gauge.
func Gauge(name string) GaugeMeter { return current().gauge(name) }

// GaugeVec returns the named gauge partitioned by labels.
func GaugeVec(name string, labels []string) GaugeVecMeter { return current().gaugeVec(name, labels) }

// Histogram returns the named histogram. A nil buckets slice uses
// prometheus.DefBuckets.
func Histogram(name string, buckets []float64) HistogramMeter { return current().histogram(name, buckets) }

// HistogramVec returns the named histogram partitioned by labels.
func HistogramVec(name string, labels []string, buckets []float64) HistogramVecMeter {
	return current().histogramVec(name, labels, buckets)
}

// LazyLoadCounter defers the Counter(name) lookup to call time, so a
// reference taken before InitializePrometheusMetrics still resolves to a
// real Prometheus meter afterward.
func LazyLoadCounter(name string) func() CountMeter {
	return func() CountMeter { return Counter(name) }
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return func() CountVecMeter { return CounterVec(name, labels) }
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return func() GaugeMeter { return Gauge(name) }
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return func() GaugeVecMeter { return GaugeVec(name, labels) }
}

func LazyLoadHistogram(name string, buckets []float64) func() HistogramMeter {
	return func() HistogramMeter { return Histogram(name, buckets) }
}

func LazyLoadHistogramVec(name string, labels []string, buckets []float64) func() HistogramVecMeter {
	return func() HistogramVecMeter { return HistogramVec(name, labels, buckets) }
}

// HTTPHandler serves the current backend's scrape endpoint; the noop
// backend answers 404 so an unconfigured node doesn't accidentally expose
// an empty /metrics route.
func HTTPHandler() http.Handler { return current().httpHandler() }

// InitializePrometheusMetrics switches every subsequent meter lookup onto
// a real Prometheus registry. Call once at process start, before serving
// traffic.
func InitializePrometheusMetrics() {
	mu.Lock()
	defer mu.Unlock()
	metrics = newPromMetrics()
}

const metricPrefix = "thor_metrics_"

func metricName(name string) string { return metricPrefix + name }

// noopMeters is both a no-op backend and a no-op meter of every kind at
// once: Add/AddWithLabel/Observe/ObserveWithLabels satisfy CountMeter,
// GaugeMeter, CountVecMeter, GaugeVecMeter, HistogramMeter and
// HistogramVecMeter simultaneously, so one tiny struct stands in for the
// entire metric surface before Prometheus is wired up.
type noopMeters struct{}

func defaultNoopMetrics() *noopMeters { return &noopMeters{} }

func (n *noopMeters) counter(string) CountMeter                        { return n }
func (n *noopMeters) counterVec(string, []string) CountVecMeter        { return n }
func (n *noopMeters) gauge(string) GaugeMeter                          { return n }
func (n *noopMeters) gaugeVec(string, []string) GaugeVecMeter          { return n }
func (n *noopMeters) histogram(string, []float64) HistogramMeter       { return n }
func (n *noopMeters) histogramVec(string, []string, []float64) HistogramVecMeter { return n }
func (n *noopMeters) httpHandler() http.Handler                        { return http.NotFoundHandler() }

func (n *noopMeters) Add(int64)                                  {}
func (n *noopMeters) AddWithLabel(int64, map[string]string)      {}
func (n *noopMeters) Observe(int64)                               {}
func (n *noopMeters) ObserveWithLabels(int64, map[string]string) {}

// promCountMeter, promCountVecMeter, promGaugeMeter, promGaugeVecMeter,
// promHistogramMeter and promHistogramVecMeter wrap the corresponding
// client_golang collector so Add/Observe calls go straight through
// without a further map lookup.
type promCountMeter struct{ c prometheus.Counter }

func (m *promCountMeter) Add(v int64) { m.c.Add(float64(v)) }

type promCountVecMeter struct{ v *prometheus.CounterVec }

func (m *promCountVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Add(float64(v))
}

type promGaugeMeter struct{ g prometheus.Gauge }

func (m *promGaugeMeter) Add(v int64) { m.g.Add(float64(v)) }

type promGaugeVecMeter struct{ v *prometheus.GaugeVec }

func (m *promGaugeVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Add(float64(v))
}

type promHistogramMeter struct{ h prometheus.Histogram }

func (m *promHistogramMeter) Observe(v int64) { m.h.Observe(float64(v)) }

type promHistogramVecMeter struct{ v *prometheus.HistogramVec }

func (m *promHistogramVecMeter) ObserveWithLabels(v int64, labels map[string]string) {
	m.v.With(prometheus.Labels(labels)).Observe(float64(v))
}

// promMetrics is the real backend: a registry of lazily created,
// name-keyed collectors registered against prometheus.DefaultRegisterer.
type promMetrics struct {
	mu          sync.Mutex
	counters    map[string]*promCountMeter
	counterVecs map[string]*promCountVecMeter
	gauges      map[string]*promGaugeMeter
	gaugeVecs   map[string]*promGaugeVecMeter
	hists       map[string]*promHistogramMeter
	histVecs    map[string]*promHistogramVecMeter
}

func newPromMetrics() *promMetrics {
	return &promMetrics{
		counters:    make(map[string]*promCountMeter),
		counterVecs: make(map[string]*promCountVecMeter),
		gauges:      make(map[string]*promGaugeMeter),
		gaugeVecs:   make(map[string]*promGaugeVecMeter),
		hists:       make(map[string]*promHistogramMeter),
		histVecs:    make(map[string]*promHistogramVecMeter),
	}
}

func (p *promMetrics) counter(name string) CountMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counters[name]; ok {
		return m
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: metricName(name)})
	prometheus.MustRegister(c)
	m := &promCountMeter{c: c}
	p.counters[name] = m
	return m
}

func (p *promMetrics) counterVec(name string, labels []string) CountVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counterVecs[name]; ok {
		return m
	}
	v := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metricName(name)}, labels)
	prometheus.MustRegister(v)
	m := &promCountVecMeter{v: v}
	p.counterVecs[name] = m
	return m
}

func (p *promMetrics) gauge(name string) GaugeMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gauges[name]; ok {
		return m
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: metricName(name)})
	prometheus.MustRegister(g)
	m := &promGaugeMeter{g: g}
	p.gauges[name] = m
	return m
}

func (p *promMetrics) gaugeVec(name string, labels []string) GaugeVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gaugeVecs[name]; ok {
		return m
	}
	v := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metricName(name)}, labels)
	prometheus.MustRegister(v)
	m := &promGaugeVecMeter{v: v}
	p.gaugeVecs[name] = m
	return m
}

func (p *promMetrics) histogram(name string, buckets []float64) HistogramMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.hists[name]; ok {
		return m
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: metricName(name), Buckets: buckets})
	prometheus.MustRegister(h)
	m := &promHistogramMeter{h: h}
	p.hists[name] = m
	return m
}

func (p *promMetrics) histogramVec(name string, labels []string, buckets []float64) HistogramVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.histVecs[name]; ok {
		return m
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	v := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: metricName(name), Buckets: buckets}, labels)
	prometheus.MustRegister(v)
	m := &promHistogramVecMeter{v: v}
	p.histVecs[name] = m
	return m
}

func (p *promMetrics) httpHandler() http.Handler { return promhttp.Handler() }
