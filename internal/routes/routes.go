package routes

import (
	"net/http"
	"net/netip"

	"github.com/Michaelnacaya1234/Accounting-services/internal/handlers"
	"github.com/Michaelnacaya1234/Accounting-services/internal/middleware"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Password  *handlers.PasswordHandler
	Clients   *handlers.ClientHandler
	Employees *handlers.EmployeeHandler
	Uploads   *handlers.UploadHandler
}

func InitRoutes(router *mux.Router, jwtSecret string, trustedProxies []netip.Prefix, h Handlers) {
	router.Use(middleware.RequestID, middleware.ClientIP(trustedProxies), middleware.Logging, middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/password/request-reset", h.Password.RequestReset).Methods(http.MethodPost)
	api.HandleFunc("/password/reset", h.Password.Reset).Methods(http.MethodPost)
	api.HandleFunc("/employees", h.Employees.SignUp).Methods(http.MethodPost)

	// --- Только администратор ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.AnyRole(models.RoleAdmin))

	admin.HandleFunc("/clients/approve", h.Clients.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/employees", h.Employees.List).Methods(http.MethodGet)
	admin.HandleFunc("/employees", h.Employees.Create).Methods(http.MethodPost)
	admin.HandleFunc("/employees/{id:[0-9]+}", h.Employees.Update).Methods(http.MethodPut)
	admin.HandleFunc("/employees/{id:[0-9]+}", h.Employees.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/uploads/{name}", h.Uploads.Download).Methods(http.MethodGet)
}
