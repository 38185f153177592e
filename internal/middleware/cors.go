package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS пропускает запросы с cookie/Authorization только от перечисленных origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Reset-Token", "X-Reset-Code", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		MaxAge:           86400,
	})
	return c.Handler
}
