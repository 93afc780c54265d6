package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Bookings counts scheduling outcomes.
type Bookings struct {
	bookedTotal   prometheus.Counter
	conflictTotal prometheus.Counter
}

func NewBookings(reg prometheus.Registerer) *Bookings {
	b := &Bookings{
		bookedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "booked_total",
			Help:      "Appointments booked successfully",
		}),
		conflictTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken or contended",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(b.bookedTotal, b.conflictTotal)
	return b
}

func (b *Bookings) ObserveBooked() {
	if b == nil {
		return
	}
	b.bookedTotal.Inc()
}

func (b *Bookings) ObserveConflict() {
	if b == nil {
		return
	}
	b.conflictTotal.Inc()
}

// HTTP records request durations per route and status.
type HTTP struct {
	duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(h.duration)
	return h
}

func (h *HTTP) ObserveRequest(method, route string, status int, seconds float64) {
	if h == nil {
		return
	}
	h.duration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
