package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SnapshotReflectsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/dashboard", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/v1/dashboard", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/v1/export", "GET", 400, time.Millisecond)
	m.RecordError("/api/v1/export", "GET", "VALIDATION_FAILED")

	requests, errorCounts := m.Snapshot()
	assert.Equal(t, int64(2), requests["/api/v1/dashboard|GET|200"])
	assert.Equal(t, int64(1), requests["/api/v1/export|GET|400"])
	assert.Equal(t, int64(1), errorCounts["/api/v1/export|GET|VALIDATION_FAILED"])
}

func TestMetrics_SnapshotIsACopy(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/health/live", "GET", 200, time.Millisecond)

	requests, _ := m.Snapshot()
	requests["/health/live|GET|200"] = 99

	fresh, _ := m.Snapshot()
	require.Equal(t, int64(1), fresh["/health/live|GET|200"])
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
}
