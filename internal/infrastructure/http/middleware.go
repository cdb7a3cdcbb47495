package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Metrics holds the request-level instruments registered by the composition
// root. Every route here is a fixed path, so the raw path is a safe
// low-cardinality label.
type Metrics struct {
	Requests *prometheus.CounterVec   // http_requests_total{method,route,status}
	Duration *prometheus.HistogramVec // http_request_duration_seconds{method,route}
}

// Observability combines W3C trace-context extraction, X-Request-ID
// generation and echo, a request-scoped logger on the context, request
// metrics and an access log line per request.
func Observability(base *zap.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.L()
	}
	prop := otel.GetTextMapPropagator() // W3C by default

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			sc := trace.SpanContextFromContext(ctx)

			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			fields := []zap.Field{zap.String("request_id", rid)}
			if sc.IsValid() {
				fields = append(fields,
					zap.String("trace_id", sc.TraceID().String()),
					zap.String("span_id", sc.SpanID().String()),
				)
			}
			reqLogger := base.With(fields...)
			ctx = logging.ContextWithLogger(ctx, reqLogger)

			start := time.Now()
			lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			elapsed := time.Since(start)
			status := strconv.Itoa(lrw.status)
			if metrics != nil {
				if metrics.Requests != nil {
					metrics.Requests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
				}
				if metrics.Duration != nil {
					metrics.Duration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())
				}
			}

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", lrw.status),
				zap.Duration("elapsed", elapsed),
			)
		})
	}
}

// CORS answers preflight requests and marks responses for the browser
// frontend. The API carries no credentials, so a wildcard origin is fine.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, traceparent")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
