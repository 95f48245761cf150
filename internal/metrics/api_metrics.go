package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics содержит метрики бэк-офиса: заказы, рассылка обновлений, HTTP.
type APIMetrics struct {
	// Счётчики операций над заказами
	ordersCreated   prometheus.Counter
	ordersCancelled prometheus.Counter
	statusUpdates   *prometheus.CounterVec

	// Рассылка обновлений админке
	broadcasts     prometheus.Counter
	broadcastDrops prometheus.Counter

	// Gauge активных SSE-подписчиков
	activeSubscribers prometheus.Gauge

	// Гистограмма длительности HTTP-запросов
	requestDuration *prometheus.HistogramVec
}

// NewAPIMetrics создаёт и регистрирует метрики в глобальном реестре.
func NewAPIMetrics() *APIMetrics {
	return newAPIMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newAPIMetricsWithRegisterer(registerer prometheus.Registerer) *APIMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &APIMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_cancelled_total",
			Help: "Total number of orders cancelled by admins",
		}),
		statusUpdates: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_status_updates_total",
			Help: "Total number of admin status updates by target status",
		}, []string{"status"}),
		broadcasts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_broadcasts_total",
			Help: "Total number of update signals fanned out to stream subscribers",
		}),
		broadcastDrops: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_broadcast_drops_total",
			Help: "Total number of update signals dropped because a subscriber was not draining",
		}),
		activeSubscribers: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "backoffice_active_stream_subscribers",
			Help: "Number of currently connected admin stream subscribers",
		}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *APIMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *APIMetrics) RecordOrderCancelled() {
	if m == nil {
		return
	}
	m.ordersCancelled.Inc()
}

// RecordStatusUpdate увеличивает счётчик смен статуса.
func (m *APIMetrics) RecordStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(status).Inc()
}

// RecordBroadcast увеличивает счётчик доставленных сигналов.
func (m *APIMetrics) RecordBroadcast() {
	if m == nil {
		return
	}
	m.broadcasts.Inc()
}

// RecordBroadcastDrop увеличивает счётчик сигналов, отброшенных из-за
// неуспевающего подписчика.
func (m *APIMetrics) RecordBroadcastDrop() {
	if m == nil {
		return
	}
	m.broadcastDrops.Inc()
}

// SubscriberConnected увеличивает gauge активных подписчиков.
func (m *APIMetrics) SubscriberConnected() {
	if m == nil {
		return
	}
	m.activeSubscribers.Inc()
}

// SubscriberDisconnected уменьшает gauge активных подписчиков.
func (m *APIMetrics) SubscriberDisconnected() {
	if m == nil {
		return
	}
	m.activeSubscribers.Dec()
}

// ObserveRequest записывает длительность HTTP-запроса.
func (m *APIMetrics) ObserveRequest(route string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
