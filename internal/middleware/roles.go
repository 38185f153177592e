package middleware

import (
	"net/http"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"go.uber.org/zap"
)

// AnyRole должен стоять после JWTAuth, чтобы роль уже была в контексте.
func AnyRole(allowed ...int) func(http.Handler) http.Handler {
	roleSet := make(map[int]struct{}, len(allowed))
	for _, r := range allowed {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := reqctx.GetRoleID(r.Context())
			if !ok {
				helpers.Error(w, http.StatusForbidden, "Could not determine role.")
				return
			}
			if _, found := roleSet[role]; !found {
				logger.WithCtx(r.Context()).Warn("Доступ запрещён", zap.Int("role_id", role))
				helpers.Error(w, http.StatusForbidden, "Access denied.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
