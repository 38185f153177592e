package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordResetter interface {
	RequestReset(ctx context.Context, identity, clientIP string) (resettoken.IssueResult, error)
	Reset(ctx context.Context, req resettoken.VerifyRequest, clientIP string) error
}

type PasswordHandler struct {
	svc PasswordResetter
}

func NewPasswordHandler(svc PasswordResetter) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

var (
	tokenAliases    = []string{"token", "reset_token", "resetToken", "t"}
	codeAliases     = []string{"code", "otp", "reset_code", "verification_code", "verificationCode", "c"}
	passwordAliases = []string{"password", "new_password", "newPassword", "pass"}
)

type requestResetRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type requestResetResponse struct {
	helpers.Response
	Token string `json:"token"`
}

type resetRequest struct {
	Token       string `json:"token"`
	Code        string `json:"code"`
	NewPassword string `json:"password"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
}

// RequestReset godoc
// @Summary Запрос кода для сброса пароля
// @Description Отправляет 6-значный код на почту и возвращает подписанный токен. Ответ одинаков для существующих и несуществующих аккаунтов.
// @Tags password
// @Accept json
// @Produce json
// @Param input body requestResetRequest true "Email (или username)"
// @Success 200 {object} requestResetResponse
// @Failure 400 {object} helpers.Response
// @Failure 429 {object} helpers.Response
// @Failure 500 {object} helpers.Response
// @Router /api/password/request-reset [post]
func (h *PasswordHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	identity := firstOf(fields, "email")
	if identity == "" {
		identity = firstOf(fields, "username")
	}

	res, err := h.svc.RequestReset(r.Context(), identity, clientIP(r))
	if err != nil {
		status, msg := resetErrorResponse(err)
		logger.WithCtx(r.Context()).Warn("Запрос сброса пароля не выполнен",
			zap.String("identity", utils.MaskEmail(identity)), zap.Int("status", status), zap.Error(err))
		helpers.Error(w, status, msg)
		return
	}

	helpers.JSON(w, http.StatusOK, requestResetResponse{
		Response: helpers.Response{OK: true, Message: "If the account exists, a code has been sent."},
		Token:    res.Token,
	})
}

// Reset godoc
// @Summary Установка нового пароля по токену и коду
// @Description Токен, код и пароль принимаются под несколькими именами полей, а также из query (token, reset_token, code, otp) и заголовков (Authorization: Bearer, X-Reset-Token, X-Reset-Code).
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetRequest true "Токен, код и новый пароль"
// @Success 200 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Failure 429 {object} helpers.Response
// @Failure 500 {object} helpers.Response
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req := normalizeReset(r, fields)

	if err := h.svc.Reset(r.Context(), req, clientIP(r)); err != nil {
		status, msg := resetErrorResponse(err)
		logger.WithCtx(r.Context()).Warn("Сброс пароля не выполнен", zap.Int("status", status), zap.Error(err))
		helpers.Error(w, status, msg)
		return
	}

	helpers.OK(w, http.StatusOK, "Password updated successfully")
}

// normalizeReset собирает поля из тела, затем query, затем заголовков.
func normalizeReset(r *http.Request, fields map[string]string) resettoken.VerifyRequest {
	req := resettoken.VerifyRequest{
		Token:       firstOf(fields, tokenAliases...),
		Code:        firstOf(fields, codeAliases...),
		NewPassword: firstRawOf(fields, passwordAliases...),
	}

	q := r.URL.Query()
	if req.Token == "" {
		req.Token = firstNonEmpty(q.Get("token"), q.Get("reset_token"))
	}
	if req.Code == "" {
		req.Code = firstNonEmpty(q.Get("code"), q.Get("otp"))
	}

	if req.Token == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
			req.Token = strings.TrimSpace(auth[7:])
		}
	}
	if req.Token == "" {
		req.Token = strings.TrimSpace(r.Header.Get("X-Reset-Token"))
	}
	if req.Code == "" {
		req.Code = strings.TrimSpace(r.Header.Get("X-Reset-Code"))
	}

	req.IdentityHint = firstOf(fields, "email")
	if req.IdentityHint == "" {
		req.IdentityHint = firstOf(fields, "username")
	}
	return req
}

// readFields читает JSON-объект или форму в плоскую карту строк.
func readFields(r *http.Request) (map[string]string, error) {
	fields := map[string]string{}

	if isJSON(r) || !isForm(r) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			return fields, nil
		}
		var raw map[string]interface{}
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			if s, ok := stringValue(v); ok {
				fields[k] = s
			}
		}
		return fields, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxJSONBody); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}

func isForm(r *http.Request) bool {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(fields[k]); v != "" {
			return v
		}
	}
	return ""
}

// firstRawOf не обрезает пробелы: они часть пароля.
func firstRawOf(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func resetErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests. Please try again later."
	case errors.Is(err, resettoken.ErrValidation):
		return http.StatusBadRequest, validationText(err)
	case errors.Is(err, resettoken.ErrNoContact):
		return http.StatusBadRequest, "No email address on file for this user."
	case errors.Is(err, resettoken.ErrFormat):
		return http.StatusBadRequest, "Invalid token format."
	case errors.Is(err, resettoken.ErrMalformed):
		return http.StatusBadRequest, "Malformed token."
	case errors.Is(err, resettoken.ErrSignature):
		return http.StatusBadRequest, "Invalid token signature."
	case errors.Is(err, resettoken.ErrExpired):
		return http.StatusBadRequest, "Reset token has expired."
	case errors.Is(err, resettoken.ErrInvalidCode):
		return http.StatusBadRequest, "Invalid reset code."
	case errors.Is(err, resettoken.ErrIdentityMismatch):
		return http.StatusBadRequest, "Provided account details do not match the token."
	case errors.Is(err, resettoken.ErrTokenUsed):
		return http.StatusBadRequest, "Reset token has already been used."
	case errors.Is(err, resettoken.ErrDelivery):
		return http.StatusInternalServerError, "Could not send email."
	case errors.Is(err, resettoken.ErrStore):
		return http.StatusInternalServerError, "Could not update password."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func validationText(err error) string {
	msg := strings.TrimPrefix(err.Error(), resettoken.ErrValidation.Error()+": ")
	if msg == "" || msg == err.Error() {
		return "Missing or invalid field."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
