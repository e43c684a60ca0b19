package routers

import (
	"SurveyPulse/internal/handlers"
	"SurveyPulse/internal/middleware"
	"SurveyPulse/internal/realtime"
	"SurveyPulse/internal/utils"
	"SurveyPulse/pkg/jwt"
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterAnalysisRouters(apiRouter *mux.Router) {
	apiRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RateLimitMiddleware(next.ServeHTTP)
	});

	//token middleware
	apiRouter.Use(func(h http.Handler) http.Handler {
		return jwt.Middleware(h.ServeHTTP);
	})

	apiRouter.HandleFunc("/analysis", handlers.CreateAnalysisHandler).Methods("POST");
	apiRouter.HandleFunc("/analysis/status", handlers.GetAnalysisStatusHandler).Methods("GET");
	apiRouter.HandleFunc("/analysis", handlers.ListAnalysesHandler).Methods("GET");
}

func RegisterWebsocketRoutes(apiRouter *mux.Router, hub *realtime.Hub) {

	//token middleware
	apiRouter.Use(func(h http.Handler) http.Handler {
		return jwt.Middleware(h.ServeHTTP);
	});

	apiRouter.HandleFunc("/ws", hub.ServeWebSocket);

	apiRouter.HandleFunc("/ws/stats", func(w http.ResponseWriter, r *http.Request) {
		analysisID := r.URL.Query().Get("analysisId");
		if analysisID == "" {
			utils.ErrorResponse(w, http.StatusBadRequest, "analysisId is absent");
			return;
		}

		stats := hub.GetAnalysisStats(analysisID);
		utils.JSONResponse(w, http.StatusOK, stats);
	})
}
