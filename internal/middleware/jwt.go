package middleware

import (
	"net/http"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"go.uber.org/zap"
)

func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Missing access token.")
				return
			}

			claims, err := utils.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := reqctx.WithUserID(r.Context(), claims.UserID)
			ctx = reqctx.WithRoleID(ctx, claims.RoleID)
			if rec, ok := w.(userIDRecorder); ok {
				rec.setUserID(claims.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
