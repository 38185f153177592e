package helpers

import (
	"encoding/json"
	"net/http"
)

// Response — общий конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

func OK(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Response{OK: true, Message: message})
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	JSON(w, status, Response{OK: false, Message: errMsg})
}
