package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a plain 500. The error log entry
// reaches sentry through the logging hook.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					// net/http handles this one itself
					panic(recovered)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				log.WithFields(log.Fields{
					"request_id": r.Header.Get(RequestIDHeader),
					"method":     r.Method,
				}).Errorf("panic serving %s: %v\n%s", r.URL.Path, recovered, debug.Stack())
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
