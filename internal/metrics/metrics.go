// Package metrics exposes business counters for Prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "gastropos"

// Recorder owns its registry so tests and multiple servers never collide on
// the global one. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	salesRecorded prometheus.Counter
	salesDeleted  prometheus.Counter
	revenue       prometheus.Counter
	reports       *prometheus.CounterVec
	insights      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Completed sales appended to the sale log.",
		}),
		salesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_deleted_total",
			Help:      "Sales removed from the sale log.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Revenue of recorded sales in store currency units.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports produced, by kind.",
		}, []string{"kind"}),
		insights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_total",
			Help:      "AI insight requests, by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.salesRecorded,
		r.salesDeleted,
		r.revenue,
		r.reports,
		r.insights,
		r.httpRequests,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) SaleRecorded(total decimal.Decimal) {
	if r == nil {
		return
	}
	r.salesRecorded.Inc()
	if v := total.InexactFloat64(); v > 0 {
		r.revenue.Add(v)
	}
}

func (r *Recorder) SaleDeleted() {
	if r == nil {
		return
	}
	r.salesDeleted.Inc()
}

func (r *Recorder) ReportGenerated(kind string) {
	if r == nil {
		return
	}
	r.reports.WithLabelValues(kind).Inc()
}

func (r *Recorder) Insight(outcome string) {
	if r == nil {
		return
	}
	r.insights.WithLabelValues(outcome).Inc()
}

func (r *Recorder) HTTPRequest(method string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
