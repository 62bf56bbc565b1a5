package metrics

import (
	"net/http"
	"strconv"
)

// statusInterceptor wraps http.ResponseWriter to capture the status code.
type statusInterceptor struct {
	http.ResponseWriter
	statusCode int
}

func (i *statusInterceptor) WriteHeader(code int) {
	i.statusCode = code
	i.ResponseWriter.WriteHeader(code)
}

// Middleware records a response counter per endpoint and status code.
// Compatible with chi's router middleware chain.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Default to 200 OK if WriteHeader is never called.
		interceptor := &statusInterceptor{w, http.StatusOK}
		next.ServeHTTP(interceptor, r)
		EndpointResponses.WithLabelValues(r.URL.Path, strconv.Itoa(interceptor.statusCode)).Inc()
	})
}
