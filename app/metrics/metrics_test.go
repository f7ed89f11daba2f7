package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Run("counts by outcome", func(t *testing.T) {
		m := New()
		m.Observe(OutcomeSuccess, time.Millisecond)
		m.Observe(OutcomeSuccess, time.Millisecond)
		m.Observe("not_found", time.Millisecond)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues(OutcomeSuccess)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("not_found")))
		assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
	})
	t.Run("nil metrics", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() { m.Observe(OutcomeSuccess, time.Second) })
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe(OutcomeSuccess, time.Millisecond)
	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	r, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer r.Body.Close()
	assert.Equal(t, http.StatusOK, r.StatusCode)
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dictionary_lookups_total{outcome="success"} 1`)
	assert.Contains(t, string(body), "dictionary_lookup_duration_seconds_count 1")
}
