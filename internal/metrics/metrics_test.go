package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := NewBookings(reg)

	b.ObserveBooked()
	b.ObserveBooked()
	b.ObserveConflict()

	assert.Equal(t, 2.0, testutil.ToFloat64(b.bookedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.conflictTotal))
}

func TestNilReceiversAreSafe(t *testing.T) {
	var b *Bookings
	var h *HTTP

	require.NotPanics(t, func() {
		b.ObserveBooked()
		b.ObserveConflict()
		h.ObserveRequest("GET", "/appointments", 200, 0.01)
	})
}

func TestHTTPHistogramRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTP(reg)

	h.ObserveRequest("POST", "/appointments", 201, 0.02)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "clinic_http_request_duration_seconds", families[0].GetName())
}
