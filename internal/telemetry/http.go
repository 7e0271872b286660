package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	catalogotel "github.com/stacklok/game-catalog-server/internal/otel"
)

const (
	// TracerName is the name of the tracer used for HTTP and catalog service spans
	TracerName = "github.com/stacklok/game-catalog-server/http"

	// HTTPMetricsMeterName is the name of the meter used for request metrics
	HTTPMetricsMeterName = "github.com/stacklok/game-catalog-server/http"

	// NoFacets is the facets label of a game query without any selection
	NoFacets = "none"

	unknownRoute = "unknown_route"
)

// uninstrumentedPaths are probe, scrape and document endpoints
var uninstrumentedPaths = map[string]struct{}{
	"/health":       {},
	"/readiness":    {},
	"/metrics":      {},
	"/openapi.json": {},
	"/openapi.yaml": {},
}

// GameQuery is the facet selection and outcome of one served game query.
// Nil selections are absent.
type GameQuery struct {
	Category    *string
	Publisher   *string
	CategoryID  *int
	PublisherID *int
	Results     int
}

// Facets names the selected facet parameters joined by "+", or NoFacets.
// The order is fixed so the value is usable as a bounded metric label.
func (q *GameQuery) Facets() string {
	var names []string
	if q.Category != nil {
		names = append(names, "category")
	}
	if q.Publisher != nil {
		names = append(names, "publisher")
	}
	if q.CategoryID != nil {
		names = append(names, "category_id")
	}
	if q.PublisherID != nil {
		names = append(names, "publisher_id")
	}
	if len(names) == 0 {
		return NoFacets
	}
	return strings.Join(names, "+")
}

func (q *GameQuery) spanAttributes() []attribute.KeyValue {
	attrs := catalogotel.FilterAttributes(q.Category, q.Publisher)
	if q.CategoryID != nil {
		attrs = append(attrs, catalogotel.AttrFilterCategoryID.Int(*q.CategoryID))
	}
	if q.PublisherID != nil {
		attrs = append(attrs, catalogotel.AttrFilterPublisherID.Int(*q.PublisherID))
	}
	return append(attrs,
		catalogotel.AttrFilterFacets.String(q.Facets()),
		catalogotel.AttrResultCount.Int(q.Results),
	)
}

// servedRequest collects what the catalog handlers report about a request
type servedRequest struct {
	query  atomic.Pointer[GameQuery]
	gameID atomic.Pointer[int]
}

type servedRequestKey struct{}

// withServedRequest returns r carrying a servedRequest, reusing one installed by an outer middleware
func withServedRequest(r *http.Request) (*http.Request, *servedRequest) {
	if sr, ok := r.Context().Value(servedRequestKey{}).(*servedRequest); ok {
		return r, sr
	}
	sr := &servedRequest{}
	return r.WithContext(context.WithValue(r.Context(), servedRequestKey{}, sr)), sr
}

// RecordGameQuery reports a served game query to the instrumenting middlewares.
// It is a no-op outside an instrumented request.
func RecordGameQuery(ctx context.Context, q GameQuery) {
	if sr, ok := ctx.Value(servedRequestKey{}).(*servedRequest); ok {
		sr.query.Store(&q)
	}
}

// RecordGameLookup reports the id of a game requested by id
func RecordGameLookup(ctx context.Context, id int) {
	if sr, ok := ctx.Value(servedRequestKey{}).(*servedRequest); ok {
		sr.gameID.Store(&id)
	}
}

// TracingMiddleware starts a server span per request. Game queries carry
// their facet selection and result count, game lookups the requested id.
// If provider is nil, it returns a pass-through middleware.
func TracingMiddleware(provider trace.TracerProvider) func(http.Handler) http.Handler {
	if provider == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	tracer := provider.Tracer(TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := uninstrumentedPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			// The propagator is looked up per request so it follows the one installed by New
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(semconv.HTTPRequestMethodKey.String(r.Method)),
			)
			defer span.End()

			req, served := withServedRequest(r.WithContext(ctx))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, req)

			route := routePattern(r)
			status := responseStatus(ww)
			span.SetName(r.Method + " " + route)
			span.SetAttributes(
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCode(status),
			)
			if q := served.query.Load(); q != nil {
				span.SetAttributes(q.spanAttributes()...)
			}
			if id := served.gameID.Load(); id != nil {
				span.SetAttributes(catalogotel.AttrGameID.Int(*id))
			}

			// 4xx are the caller's problem and leave the server span unset
			switch {
			case status >= 500:
				span.SetStatus(codes.Error, http.StatusText(status))
			case status < 400:
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

// HTTPMetrics holds the request instruments of the catalog API
type HTTPMetrics struct {
	requestDuration metric.Float64Histogram
	requestsTotal   metric.Int64Counter
}

// NewHTTPMetrics creates the request instruments.
// If provider is nil, it returns nil (no-op metrics).
func NewHTTPMetrics(provider metric.MeterProvider) (*HTTPMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(HTTPMetricsMeterName)

	requestDuration, err := meter.Float64Histogram(
		"catalog_api_request_duration_seconds",
		metric.WithDescription("Duration of catalog API requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	requestsTotal, err := meter.Int64Counter(
		"catalog_api_requests_total",
		metric.WithDescription("Total number of catalog API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	return &HTTPMetrics{
		requestDuration: requestDuration,
		requestsTotal:   requestsTotal,
	}, nil
}

// Middleware counts and times requests by route and status. Game queries are
// also labelled with their selected facets.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := uninstrumentedPaths[r.URL.Path]; skip {
			next.ServeHTTP(w, r)
			return
		}

		// The request context may be cancelled once ServeHTTP returns
		ctx := context.WithoutCancel(r.Context())
		start := time.Now()

		req, served := withServedRequest(r)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, req)

		attrs := []attribute.KeyValue{
			attribute.String("method", r.Method),
			attribute.String("route", routePattern(r)),
			attribute.String("status", strconv.Itoa(responseStatus(ww))),
		}
		if q := served.query.Load(); q != nil {
			attrs = append(attrs, attribute.String("facets", q.Facets()))
		}

		set := metric.WithAttributes(attrs...)
		m.requestDuration.Record(ctx, time.Since(start).Seconds(), set)
		m.requestsTotal.Add(ctx, 1, set)
	})
}

// MetricsMiddleware returns the request metrics middleware for provider,
// or nil when provider is nil
func MetricsMiddleware(provider metric.MeterProvider) (func(http.Handler) http.Handler, error) {
	metrics, err := NewHTTPMetrics(provider)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, nil
	}
	return metrics.Middleware, nil
}

// routePattern returns the chi route pattern so labels stay bounded by the routing table
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unknownRoute
}

// responseStatus treats a handler that never wrote a header as 200
func responseStatus(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
