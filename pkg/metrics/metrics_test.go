package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if hasLabels(metric, labels) {
				return metric
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return nil
}

func hasLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if v, ok := labels[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.IncBookingCreated("created")
	m.IncBookingCreated("created")
	m.IncBookingCreated("conflict")
	m.IncStatusTransition("pending", "confirmed")
	m.IncAvailabilityComputation("plan")
	m.RecordHTTPRequest("GET", "/api/v1/bookings/{bookingId}", 200, 15*time.Millisecond)

	created := findMetric(t, reg, "barber_booking_bookings_created_total", map[string]string{"result": "created", "service": "test"})
	assert.Equal(t, 2.0, created.GetCounter().GetValue())

	conflict := findMetric(t, reg, "barber_booking_bookings_created_total", map[string]string{"result": "conflict"})
	assert.Equal(t, 1.0, conflict.GetCounter().GetValue())

	transition := findMetric(t, reg, "barber_booking_booking_status_transitions_total", map[string]string{"from": "pending", "to": "confirmed"})
	assert.Equal(t, 1.0, transition.GetCounter().GetValue())

	requests := findMetric(t, reg, "barber_booking_http_requests_total", map[string]string{"status": "200"})
	assert.Equal(t, 1.0, requests.GetCounter().GetValue())
}

func TestMetrics_DBQueryStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	ok := findMetric(t, reg, "barber_booking_db_query_duration_seconds", map[string]string{"operation": "select", "status": "ok"})
	assert.Equal(t, uint64(1), ok.GetHistogram().GetSampleCount())

	failed := findMetric(t, reg, "barber_booking_db_query_duration_seconds", map[string]string{"operation": "insert", "status": "error"})
	assert.Equal(t, uint64(1), failed.GetHistogram().GetSampleCount())
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("created")
		m.IncStatusTransition("pending", "cancelled")
		m.IncAvailabilityComputation("capacity")
		m.IncRulesCache("hit")
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}
