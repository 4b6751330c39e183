package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/mcstats/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error kind for one
// route under the given endpoint label.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, time.Since(start).Seconds())

		if kind, failed := errorKind(rec.status); failed {
			metrics.RecordErrorByComponent("http", kind)
		}
	}
}

// errorKind maps a failing status onto the errors_total error_type label.
func errorKind(status int) (string, bool) {
	switch {
	case status < http.StatusBadRequest:
		return "", false
	case status == http.StatusServiceUnavailable:
		return "unavailable", true
	case status >= http.StatusInternalServerError:
		return "server_error", true
	case status == http.StatusMethodNotAllowed:
		return "method_not_allowed", true
	case status == http.StatusNotFound:
		return "not_found", true
	default:
		return "client_error", true
	}
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}
