package main

import (
	"SurveyPulse/internal/ai"
	"SurveyPulse/internal/database"
	"SurveyPulse/internal/kafkaImpl"
	"SurveyPulse/internal/realtime"
	"SurveyPulse/internal/routers"
	"SurveyPulse/internal/utils"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables");
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := envOrDefault("MONGO_DB", "surveypulse")
	redisURL := envOrDefault("REDIS_URL", "redis://localhost:6379")
	kafkaBroker := envOrDefault("KAFKA_BROKER", utils.KAFKA_CONNECTION)
	port := envOrDefault("PORT", "8080")

	utils.KAFKA_CONNECTION = kafkaBroker

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}

	mongoInstance := database.GetMongoInstance();
	if err := mongoInstance.Init(mongoURI, mongoDB); err != nil {
		log.Fatal("MongoDB init failed:", err);
	}

	defer mongoInstance.Close();

	redisInstance := database.GetRedisInstance();
	if err := redisInstance.Init(redisURL); err != nil {
		log.Fatal("Redis init failed : ", err);
	}

	defer redisInstance.Close();

	if err := kafkaImpl.InitKafka([]string{kafkaBroker}); err != nil {
		log.Fatal("Kafka init failed : ", err);
	}

	defer kafkaImpl.CloseKafka();

	// websocket hub for analysis progress watchers
	hub := realtime.NewHub();
	go hub.Run();

	// background consumers: analysis worker + progress broadcaster
	analyzerClient := ai.NewClient(openAIKey);
	kafkaImpl.StartAllConsumers(hub, analyzerClient);

	// cors setup
	corsOptions := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "DELETE", "POST", "OPTIONS", "PUT", "PATCH"},
		AllowCredentials: true,
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	// setup routes
	mainRouter := mux.NewRouter();

	mainRouter.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ErrorResponse(w, http.StatusNotFound, "The API endpoint you trying to reach does not exist.Make sure you are trying out the right one.");
	})

	authRouters := mainRouter.PathPrefix("/api/v1").Subrouter();
	routers.RegisterAuthRoutes(authRouters);

	surveyRouters := mainRouter.PathPrefix("/api/v1").Subrouter();
	routers.RegisterSurveyRouters(surveyRouters);

	analysisRouters := mainRouter.PathPrefix("/api/v1").Subrouter();
	routers.RegisterAnalysisRouters(analysisRouters);

	wsRouters := mainRouter.PathPrefix("/api/v1").Subrouter();
	routers.RegisterWebsocketRoutes(wsRouters, hub);

	handler := corsOptions.Handler(mainRouter);

	log.Println("Backend listening at port " + port);
	log.Fatal(http.ListenAndServe(":"+port, handler));
}
