package routers

import (
	"SurveyPulse/internal/handlers"
	"SurveyPulse/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterAuthRoutes(apiRouter *mux.Router) {
	apiRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RateLimitMiddleware(next.ServeHTTP)
	})

	apiRouter.HandleFunc("/login", handlers.LoginUserHandler).Methods("POST")
	apiRouter.HandleFunc("/register", handlers.RegisterUserHandler).Methods("POST")
}
