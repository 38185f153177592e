package middleware

import (
	"net/http"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"

	"go.uber.org/zap"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
		}
		if rid, ok := reqctx.GetRequestID(r.Context()); ok {
			fields = append(fields, zap.String("request_id", rid))
		}
		if userID, ok := lrw.userID(); ok {
			fields = append(fields, zap.Int64("user_id", userID))
		}

		logger.Log.Info("HTTP-запрос", fields...)
	})
}

// loggingResponseWriter запоминает статус и пользователя, которого
// JWTAuth положил в контекст ниже по цепочке.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	uid        int64
	hasUID     bool
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) setUserID(id int64) {
	lrw.uid, lrw.hasUID = id, true
}

func (lrw *loggingResponseWriter) userID() (int64, bool) {
	return lrw.uid, lrw.hasUID
}

type userIDRecorder interface {
	setUserID(int64)
}
