package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Michaelnacaya1234/Accounting-services/internal/middleware"
	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxJSONBody = 1 << 20

// decodeJSON читает тело и проверяет теги validate.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return validate.Struct(dst)
}

// validationMessage превращает ошибку validator в короткий текст для клиента.
func validationMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("Field %q is required.", fe.Field())
	case "email":
		return fmt.Sprintf("Field %q must be a valid email address.", fe.Field())
	default:
		return fmt.Sprintf("Field %q is invalid.", fe.Field())
	}
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

// clientIP — адрес клиента, определённый middleware.ClientIP; без него
// берётся адрес TCP-пира. X-Forwarded-For здесь не читается.
func clientIP(r *http.Request) string {
	if ip, ok := reqctx.GetClientIP(r.Context()); ok {
		return ip
	}
	return middleware.RemoteIP(r)
}

// stringValue приводит значение из JSON к строке: фронтенд иногда шлёт
// код или id числом.
func stringValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func parseOptionalInt64(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || s == "null" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || s == "null" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
