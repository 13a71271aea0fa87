package middleware

import (
	"net/http"
	"time"

	"github.com/m04kA/barber-booking/pkg/logger"
)

// AccessLog пишет одну строку на запрос с request_id, кодом ответа и длительностью
func AccessLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			reqLog := log
			if id := RequestIDFromContext(r.Context()); id != "" {
				reqLog = log.With("request_id", id)
			}

			status := rec.Status()
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("%s %s - %d (%d bytes) in %s", r.Method, r.URL.Path, status, rec.bytes, time.Since(start))
			case status >= http.StatusBadRequest:
				reqLog.Warn("%s %s - %d (%d bytes) in %s", r.Method, r.URL.Path, status, rec.bytes, time.Since(start))
			default:
				reqLog.Info("%s %s - %d (%d bytes) in %s", r.Method, r.URL.Path, status, rec.bytes, time.Since(start))
			}
		})
	}
}
