package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, " + RequestIDHeader
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsMaxAgeSecs   = "600"
)

// clients without an Origin header: the mobile app, scripts and tests
var trustedAgentPrefixes = []string{"DietPlan/", "curl/", "test-agent"}

func isTrustedAgent(userAgent string) bool {
	for _, prefix := range trustedAgentPrefixes {
		if strings.HasPrefix(userAgent, prefix) {
			return true
		}
	}
	return false
}

// Cors lets browsers in from allowedOrigins only and answers their preflight
// requests. Requests without an Origin must come from a trusted agent, the
// health check on / excepted.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin != "" && allowed[origin]:
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Max-Age", corsMaxAgeSecs)
				h.Add("Vary", "Origin")
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			case origin == "" && (isTrustedAgent(r.Header.Get("User-Agent")) || r.URL.Path == "/"):
			default:
				log.Warnf("CORS: request to [%s] refused, origin [%s], agent [%s]", r.URL.Path, origin, r.Header.Get("User-Agent"))
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
