// Package metrics exposes request and inventory counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login results.
const (
	LoginOK             = "ok"
	LoginUnknownUser    = "unknown_user"
	LoginBadCredentials = "bad_credentials"
)

// Deletion kinds.
const (
	DeleteSoft = "soft"
	DeleteHard = "hard"
)

type Metrics struct {
	registry *prometheus.Registry

	Logins          *prometheus.CounterVec
	ProductsCreated *prometheus.CounterVec
	Deletions       *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "expiry_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		ProductsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "expiry_products_created_total",
			Help: "Products entered, by section.",
		}, []string{"section"}),
		Deletions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "expiry_product_deletions_total",
			Help: "Rows flagged deleted or requested for permanent deletion, by kind.",
		}, []string{"kind"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "expiry_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
