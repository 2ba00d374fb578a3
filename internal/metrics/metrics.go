package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully persisted.",
		},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "outbox_emails_total",
			Help:      "Outbox emails by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, emailsSent)
	})
}

// IncHTTP increments the counter for a route/status pair.
func IncHTTP(route string, status int) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncEmail(result string) {
	emailsSent.WithLabelValues(result).Inc()
}
