package routers

import (
	"SurveyPulse/internal/handlers"
	"SurveyPulse/internal/middleware"
	"SurveyPulse/pkg/jwt"
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterSurveyRouters(apiRouter *mux.Router) {
	apiRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RateLimitMiddleware(next.ServeHTTP)
	});

	//token middleware
	apiRouter.Use(func(h http.Handler) http.Handler {
		return jwt.Middleware(h.ServeHTTP);
	})

	apiRouter.HandleFunc("/surveys", handlers.CreateSurveyHandler).Methods("POST");
	apiRouter.HandleFunc("/surveys", handlers.ListSurveysHandler).Methods("GET");
	apiRouter.HandleFunc("/survey", handlers.GetSurveyHandler).Methods("GET");
	apiRouter.HandleFunc("/survey/draft", handlers.PublishSurveyHandler).Methods("PATCH");
	apiRouter.HandleFunc("/questions", handlers.CreateQuestionHandler).Methods("POST");
	apiRouter.HandleFunc("/questions", handlers.ListQuestionsHandler).Methods("GET");
	apiRouter.HandleFunc("/responses", handlers.SubmitResponseHandler).Methods("POST");
}
