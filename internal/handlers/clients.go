package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"go.uber.org/zap"
)

type ClientApprover interface {
	Approve(ctx context.Context, userID int64) (services.ApprovalOutcome, error)
}

type ClientHandler struct {
	svc ClientApprover
}

func NewClientHandler(svc ClientApprover) *ClientHandler {
	return &ClientHandler{svc: svc}
}

type approveRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// Approve godoc
// @Summary Одобрение регистрации клиента
// @Description Переводит клиента в статус Active и ставит письмо-уведомление в очередь.
// @Tags clients
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body approveRequest true "ID пользователя"
// @Success 200 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/clients/approve [post]
func (h *ClientHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := decodeJSON(r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	outcome, err := h.svc.Approve(r.Context(), req.UserID)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "User not found.")
		return
	case errors.Is(err, services.ErrNoClientRecord):
		helpers.Error(w, http.StatusBadRequest, "User does not have an associated client record.")
		return
	case errors.Is(err, services.ErrInvalidInput):
		helpers.Error(w, http.StatusBadRequest, "User ID is required.")
		return
	default:
		logger.WithCtx(r.Context()).Error("Ошибка одобрения клиента", zap.Int64("user_id", req.UserID), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	msg := "Client approved successfully and approval email queued."
	switch outcome {
	case services.ApprovalNoEmail:
		msg = "Client approved successfully, but no email address found to send notification."
	case services.ApprovalEmailFailed:
		msg = "Client approved successfully, but email could not be sent."
	}
	helpers.OK(w, http.StatusOK, msg)
}
