package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"go.uber.org/zap"
)

type Authenticator interface {
	Login(ctx context.Context, identity, password string) (*models.LoginUser, string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	helpers.Response
	User        models.LoginUserResponse `json:"user"`
	AccessToken string                   `json:"access_token"`
}

// Login godoc
// @Summary Вход по email или username
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Учётные данные"
// @Success 200 {object} loginResponse
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Failure 403 {object} helpers.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	identity := strings.TrimSpace(req.Email)
	if identity == "" {
		identity = strings.TrimSpace(req.Username)
	}
	if err != nil || identity == "" {
		helpers.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, token, err := h.auth.Login(r.Context(), identity, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidInput):
		helpers.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	case errors.Is(err, services.ErrPendingApproval):
		helpers.Error(w, http.StatusForbidden, "Your account is pending approval. Please wait for an administrator to approve your account.")
		return
	default:
		logger.WithCtx(r.Context()).Error("Ошибка входа", zap.String("identity", utils.MaskEmail(identity)), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{
		Response:    helpers.Response{OK: true, Message: "Authenticated"},
		User:        user.Response(),
		AccessToken: token,
	})
}
