package middleware

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/felixge/httpsnoop"

	"github.com/faciam-dev/customfields/pkg/metrics"
)

// MetricsMW records API request metrics.
func MetricsMW(ctx huma.Context, next func(huma.Context)) {
	r, w := humachi.Unwrap(ctx)
	m := httpsnoop.CaptureMetricsFn(w, func(w http.ResponseWriter) {
		next(humachi.NewContext(ctx.Operation(), r, w))
	})
	path := routePath(ctx, r)
	metrics.APIRequests.WithLabelValues(r.Method, path, strconv.Itoa(m.Code)).Inc()
	metrics.APILatency.WithLabelValues(r.Method, path).Observe(m.Duration.Seconds())
}

var idRe = regexp.MustCompile(`\d+`)

// routePath prefers the registered operation path so that path parameters
// do not explode label cardinality.
func routePath(ctx huma.Context, r *http.Request) string {
	if op := ctx.Operation(); op != nil && op.Path != "" {
		return op.Path
	}
	return normalizePath(r.URL.Path)
}

func normalizePath(path string) string {
	return idRe.ReplaceAllString(path, ":id")
}
