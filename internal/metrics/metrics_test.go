package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ItemCreated("lost")
		m.ItemReturned()
		m.CorruptLoad()
		m.LargeImage()
		m.ImageFailure()
		m.ContactCopied()
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.ItemCreated("lost")
	m.ItemCreated("lost")
	m.ItemCreated("found")
	m.ItemReturned()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.itemsCreated.WithLabelValues("lost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.itemsCreated.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.itemsReturned))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.CorruptLoad()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lostfound_store_corrupt_loads_total 1"))
}
