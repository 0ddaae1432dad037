package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bracket"

// unknownKind labels bracket types outside brackets.Kind so that request
// input cannot grow the label set.
const unknownKind = "unknown"

func kindLabel(kind string) string {
	if brackets.Kind(kind).Valid() {
		return kind
	}
	return unknownKind
}

// Recorder owns the service collectors and the registry they are exposed from.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	bracketsGenerated *prometheus.CounterVec
	generateFailures  *prometheus.CounterVec
	resultsReported   *prometheus.CounterVec
	tournamentsDone   prometheus.Counter
	renderDuration    prometheus.Histogram
	uploadFailures    prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		bracketsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_total",
			Help:      "Brackets generated, by bracket type.",
		}, []string{"type"}),
		generateFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_failures_total",
			Help:      "Bracket generations rejected, by bracket type.",
		}, []string{"type"}),
		resultsReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_reported_total",
			Help:      "Match results recorded, by bracket type.",
		}, []string{"type"}),
		tournamentsDone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_finished_total",
			Help:      "Tournaments that produced a champion.",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent drawing bracket images.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_upload_failures_total",
			Help:      "Bracket images that could not be uploaded.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.bracketsGenerated,
		r.generateFailures,
		r.resultsReported,
		r.tournamentsDone,
		r.renderDuration,
		r.uploadFailures,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) BracketGenerated(kind string) {
	if r == nil {
		return
	}
	r.bracketsGenerated.WithLabelValues(kindLabel(kind)).Inc()
}

func (r *Recorder) GenerateFailed(kind string) {
	if r == nil {
		return
	}
	r.generateFailures.WithLabelValues(kindLabel(kind)).Inc()
}

func (r *Recorder) ResultReported(kind string) {
	if r == nil {
		return
	}
	r.resultsReported.WithLabelValues(kindLabel(kind)).Inc()
}

func (r *Recorder) TournamentFinished() {
	if r == nil {
		return
	}
	r.tournamentsDone.Inc()
}

func (r *Recorder) ObserveRender(d time.Duration) {
	if r == nil {
		return
	}
	r.renderDuration.Observe(d.Seconds())
}

func (r *Recorder) UploadFailed() {
	if r == nil {
		return
	}
	r.uploadFailures.Inc()
}

// Middleware counts requests by their chi route pattern so that path
// parameters do not explode label cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
