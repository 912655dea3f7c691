package middleware

import (
	"net/http"

	"hangwa-be/internal/logger"
	"hangwa-be/internal/metrics"
)

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartTimer()
		rec := &logger.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.ObserveHTTP(r.Method, rec.Status, timer)
	})
}
