package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type EmployeeManager interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, in services.CreateEmployeeInput) (int64, error)
	Update(ctx context.Context, in services.UpdateEmployeeInput) error
	Delete(ctx context.Context, userID int64) error
}

type EmployeeHandler struct {
	svc       EmployeeManager
	store     FileStore
	maxUpload int64
}

func NewEmployeeHandler(svc EmployeeManager, store FileStore, maxUploadMB int) *EmployeeHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &EmployeeHandler{svc: svc, store: store, maxUpload: int64(maxUploadMB) << 20}
}

type employeesResponse struct {
	helpers.Response
	Employees []models.Employee `json:"employees"`
}

type createEmployeeResponse struct {
	helpers.Response
	UserID int64 `json:"user_id"`
}

type updateEmployeeRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	RoleID   *int   `json:"role_id"`
	ClientID *int64 `json:"client_id"`
}

// List godoc
// @Summary Список клиентских аккаунтов
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} employeesResponse
// @Router /api/admin/employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения сотрудников", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	helpers.JSON(w, http.StatusOK, employeesResponse{
		Response:  helpers.Response{OK: true, Message: "Employees retrieved successfully"},
		Employees: list,
	})
}

// SignUp godoc
// @Summary Регистрация клиента
// @Description multipart/form-data или JSON. Файлы: business_permit, dti (устар. dtr), spa. Роль всегда «клиент».
// @Tags employees
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Пароль"
// @Param email formData string false "Email"
// @Param name formData string false "ФИО"
// @Param business_name formData string false "Название бизнеса"
// @Param location formData string false "Адрес"
// @Param business_permit formData file false "Разрешение на ведение бизнеса"
// @Param dti formData file false "Регистрация DTI"
// @Param spa formData file false "Доверенность (SPA)"
// @Success 201 {object} createEmployeeResponse
// @Failure 400 {object} helpers.Response
// @Router /api/employees [post]
func (h *EmployeeHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

// Create godoc
// @Summary Создание сотрудника администратором
// @Description То же, что регистрация, но role_id берётся из запроса (по умолчанию 1).
// @Tags employees
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Пароль"
// @Param role_id formData int false "Роль"
// @Param client_id formData int false "ID клиента"
// @Success 201 {object} createEmployeeResponse
// @Failure 400 {object} helpers.Response
// @Router /api/admin/employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

func (h *EmployeeHandler) create(w http.ResponseWriter, r *http.Request, signUp bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+maxJSONBody)

	in, saved, err := h.parseCreate(r)
	if err != nil {
		h.cleanup(saved)
		logger.WithCtx(r.Context()).Warn("Некорректный запрос на создание сотрудника", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if signUp {
		role := models.RoleClient
		in.RoleID = &role
	}

	id, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.cleanup(saved)
		status, msg := employeeErrorResponse(err, "Username and password are required.")
		if status == http.StatusInternalServerError {
			logger.WithCtx(r.Context()).Error("Ошибка создания сотрудника", zap.Error(err))
		}
		helpers.Error(w, status, msg)
		return
	}

	helpers.JSON(w, http.StatusCreated, createEmployeeResponse{
		Response: helpers.Response{OK: true, Message: "Employee created successfully"},
		UserID:   id,
	})
}

// Update godoc
// @Summary Обновление сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body updateEmployeeRequest true "Новые данные"
// @Success 200 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		helpers.Error(w, http.StatusBadRequest, "User ID and username are required.")
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, validationMessage(err, "User ID and username are required."))
		return
	}

	err = h.svc.Update(r.Context(), services.UpdateEmployeeInput{
		UserID:   id,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
		ClientID: req.ClientID,
	})
	if err != nil {
		status, msg := employeeErrorResponse(err, "User ID and username are required.")
		if status == http.StatusInternalServerError {
			logger.WithCtx(r.Context()).Error("Ошибка обновления сотрудника", zap.Int64("user_id", id), zap.Error(err))
		}
		helpers.Error(w, status, msg)
		return
	}
	helpers.OK(w, http.StatusOK, "Employee updated successfully")
}

// Delete godoc
// @Summary Удаление сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		helpers.Error(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		status, msg := employeeErrorResponse(err, "User ID is required.")
		if status == http.StatusInternalServerError {
			logger.WithCtx(r.Context()).Error("Ошибка удаления сотрудника", zap.Int64("user_id", id), zap.Error(err))
		}
		helpers.Error(w, status, msg)
		return
	}
	helpers.OK(w, http.StatusOK, "Employee deleted successfully")
}

// parseCreate разбирает JSON или multipart; возвращает имена уже
// сохранённых файлов, чтобы их можно было удалить при ошибке.
func (h *EmployeeHandler) parseCreate(r *http.Request) (services.CreateEmployeeInput, []string, error) {
	var (
		in     services.CreateEmployeeInput
		fields map[string]string
		saved  []string
		err    error
	)

	multipartBody := strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
	if multipartBody {
		if err = r.ParseMultipartForm(h.maxUpload); err != nil {
			return in, nil, err
		}
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
	} else if fields, err = readFields(r); err != nil {
		return in, nil, err
	}

	in.Username = fields["username"]
	in.Email = fields["email"]
	in.Password = fields["password"]
	in.Name = fields["name"]
	in.BusinessName = fields["business_name"]
	in.Location = fields["location"]
	if in.RoleID, err = parseOptionalInt(fields["role_id"]); err != nil {
		return in, nil, err
	}
	if in.ClientID, err = parseOptionalInt64(fields["client_id"]); err != nil {
		return in, nil, err
	}

	if !multipartBody {
		return in, nil, nil
	}

	uploads := []struct {
		fields []string
		prefix string
		dst    **string
	}{
		{[]string{"business_permit"}, "permit", &in.BusinessPermitFile},
		{[]string{"dti", "dtr"}, "dti", &in.DTIFile},
		{[]string{"spa"}, "spa", &in.SPAFile},
	}
	for _, u := range uploads {
		fh := firstFile(r.MultipartForm, u.fields...)
		if fh == nil {
			continue
		}
		name, err := h.saveUpload(fh, u.prefix)
		if err != nil {
			return in, saved, err
		}
		saved = append(saved, name)
		*u.dst = &name
	}
	return in, saved, nil
}

func (h *EmployeeHandler) saveUpload(fh *multipart.FileHeader, prefix string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.store.Save(prefix, fh.Filename, f)
}

func (h *EmployeeHandler) cleanup(names []string) {
	for _, n := range names {
		if err := h.store.Remove(n); err != nil {
			logger.Log.Warn("Не удалось удалить загруженный файл", zap.String("file", n), zap.Error(err))
		}
	}
}

func firstFile(form *multipart.Form, keys ...string) *multipart.FileHeader {
	for _, k := range keys {
		if fhs := form.File[k]; len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}

func employeeErrorResponse(err error, invalidMsg string) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, invalidMsg
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists."
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "User not found."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}
