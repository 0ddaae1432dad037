package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.BracketGenerated("single_elimination")
	r.BracketGenerated("single_elimination")
	r.GenerateFailed("groups")
	r.ResultReported("round_robin")
	r.TournamentFinished()
	r.UploadFailed()
	r.ObserveRender(20 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.bracketsGenerated.WithLabelValues("single_elimination")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generateFailures.WithLabelValues("groups")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resultsReported.WithLabelValues("round_robin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tournamentsDone))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.uploadFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(r.renderDuration))
}

func TestUnknownKindsShareOneLabel(t *testing.T) {
	r := NewRecorder()

	r.GenerateFailed("ladder")
	r.GenerateFailed("'; drop table brackets")
	r.GenerateFailed("swiss")
	r.BracketGenerated("nonsense")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.generateFailures.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generateFailures.WithLabelValues("swiss")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.generateFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bracketsGenerated.WithLabelValues("unknown")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.BracketGenerated("x")
		r.GenerateFailed("x")
		r.ResultReported("x")
		r.TournamentFinished()
		r.UploadFailed()
		r.ObserveRender(time.Second)
	})
	assert.Nil(t, r.Registry())

	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := NewRecorder()
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/tournaments/{tournamentID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle("/metrics", r.Handler())

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(
		r.httpRequests.WithLabelValues(http.MethodGet, "/tournaments/{tournamentID}", "204")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bracket_http_requests_total"))
}
