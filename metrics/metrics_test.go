package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	loaded := testutil.ToFloat64(detailFetchesTotal.WithLabelValues("movie", "loaded"))
	stale := testutil.ToFloat64(staleResponsesTotal.WithLabelValues("tv"))
	inFlight := testutil.ToFloat64(detailFetchesInFlight)

	r.FetchStarted("movie")
	assert.Equal(t, inFlight+1, testutil.ToFloat64(detailFetchesInFlight))
	r.FetchFinished("movie", "loaded", 120*time.Millisecond)

	r.FetchStarted("tv")
	r.FetchDiscarded("tv")

	assert.Equal(t, loaded+1, testutil.ToFloat64(detailFetchesTotal.WithLabelValues("movie", "loaded")))
	assert.Equal(t, stale+1, testutil.ToFloat64(staleResponsesTotal.WithLabelValues("tv")))
	assert.Equal(t, inFlight, testutil.ToFloat64(detailFetchesInFlight))
}

func TestTabAndHTTPCounters(t *testing.T) {
	before := testutil.ToFloat64(tabSelectionsTotal.WithLabelValues("Photos"))
	NewRecorder().TabSelected("Photos")
	assert.Equal(t, before+1, testutil.ToFloat64(tabSelectionsTotal.WithLabelValues("Photos")))

	beforeHTTP := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/{kind}/{id}", "200"))
	RecordHTTPRequest("/api/{kind}/{id}", "200")
	assert.Equal(t, beforeHTTP+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/{kind}/{id}", "200")))
}
