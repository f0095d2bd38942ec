// metrics содержит прикладные метрики Prometheus портала.
//
// Все методы безопасны для nil-получателя: сервис и транспорт
// работают и без регистрации метрик (тесты, утилиты).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portal"

// Metrics — набор счётчиков и гистограмм сервиса.
type Metrics struct {
	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	kindFailures   *prometheus.CounterVec
	leads          *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New создаёт метрики и регистрирует их в reg.
// reg == nil — метрики создаются, но не регистрируются.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Aggregated searches by region and outcome (hit, empty, partial).",
		}, []string{"region", "outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of one aggregated search across all content kinds.",
			Buckets:   prometheus.DefBuckets,
		}),
		kindFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_query_failures_total",
			Help:      "Failed content repository queries by kind and operation.",
		}, []string{"kind", "operation"}),
		leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_total",
			Help:      "Lead submissions by source and outcome.",
		}, []string{"source", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.searches,
			m.searchDuration,
			m.kindFailures,
			m.leads,
			m.httpRequests,
			m.httpDuration,
		)
	}

	return m
}

// Search фиксирует завершённый поиск.
func (m *Metrics) Search(region, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(region, outcome).Inc()
	m.searchDuration.Observe(d.Seconds())
}

// KindFailure фиксирует упавший запрос к коллекции вида kind.
func (m *Metrics) KindFailure(kind, operation string) {
	if m == nil {
		return
	}
	m.kindFailures.WithLabelValues(kind, operation).Inc()
}

// Lead фиксирует попытку сохранить лид.
func (m *Metrics) Lead(source, outcome string) {
	if m == nil {
		return
	}
	m.leads.WithLabelValues(source, outcome).Inc()
}

// HTTP фиксирует обработанный HTTP-запрос.
// route — шаблон маршрута chi, а не сырой путь (ограничение кардинальности).
func (m *Metrics) HTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
