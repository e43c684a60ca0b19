package handlers

import (
	handlerUtil "SurveyPulse/internal/handlers/utils"
	KafkaC "SurveyPulse/internal/kafkaImpl"
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/repository"
	"SurveyPulse/internal/services"
	"SurveyPulse/internal/utils"
	"SurveyPulse/pkg/jwt"

	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateAnalysisHandler validates the request and assembles the dataset
// synchronously, so every 202 corresponds to a job that can actually run.
// The analysis itself happens on the worker consumer.
func CreateAnalysisHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try POST !")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	var payload models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	surveyIdStrings, err := handlerUtil.NormalizeSurveyIDs(payload.SurveyIDs)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	surveyIDs := make([]primitive.ObjectID, 0, len(surveyIdStrings))
	for _, idStr := range surveyIdStrings {
		surveyID, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			utils.ErrorResponse(w, http.StatusBadRequest, "Invalid survey ID: "+idStr)
			return
		}
		surveyIDs = append(surveyIDs, surveyID)
	}

	analysisType := utils.ANALYSIS_SINGLE
	if len(surveyIDs) > 1 {
		analysisType = utils.ANALYSIS_MULTI
	}

	// assemble before creating the job so requests over missing or empty
	// surveys fail here instead of producing a doomed job record.
	dataset, err := services.AssembleAnalysisDataset(surveyIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSurveysFound):
			utils.ErrorResponse(w, http.StatusNotFound, "No surveys found for the given IDs")
		case errors.Is(err, services.ErrNoQuestionsFound):
			utils.ErrorResponse(w, http.StatusBadRequest, "The selected surveys have no questions to analyze")
		default:
			log.Printf("Dataset assembly failed: %v", err)
			utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to prepare survey data for analysis")
		}
		return
	}

	now := time.Now().UTC().Truncate(time.Millisecond)

	analysis := models.AiAnalysis{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		SurveyIDs: surveyIDs,
		Type:      analysisType,
		Status:    utils.ANALYSIS_PROCESSING,
		Progress:  0,
		IDMapping: models.IDMapping{
			Surveys:   dataset.ReverseSurveyIDMap,
			Questions: dataset.ReverseQuestionIDMap,
		},
		Data: models.AnalysisData{
			Overview: "Analysis in progress...",
			Surveys:  []models.SurveySummary{},
			DataQualityNotes: models.DataQualityNotes{
				ConfidenceScore:       0,
				ConfidenceExplanation: "Analysis pending completion...",
				Notes:                 []string{},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repository.CreateAnalysis(analysis); err != nil {
		log.Printf("Failed to create analysis record: %v", err)
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to create analysis job")
		return
	}

	// creating analysis request event for kafka
	analysisEvent := KafkaC.AnalysisRequestedEvent{
		EventID:    primitive.NewObjectID().Hex(),
		Type:       utils.ANALYSIS_REQUESTED_TOPIC,
		AnalysisID: analysis.ID.Hex(),
		OwnerID:    ownerID.Hex(),
		Dataset:    *dataset,
		Timestamp:  time.Now(),
	}

	// send to kafka
	if err := KafkaC.Produce(utils.ANALYSIS_REQUESTED_TOPIC, analysisEvent.AnalysisID, analysisEvent); err != nil {
		log.Printf("Failed to send analysis request to Kafka: %v", err)

		// job record exists but no worker will pick it up, resolve it now.
		if markErr := repository.MarkAnalysisFailed(analysis.ID, "failed to enqueue analysis job"); markErr != nil {
			log.Printf("Warning: failed to mark orphaned analysis as failed: %v", markErr)
		}

		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to enqueue analysis job")
		return
	}

	// Immediate 202 response
	utils.JSONResponse(w, http.StatusAccepted, map[string]interface{}{
		"message":    "Analysis accepted for processing",
		"analysisId": analysis.ID.Hex(),
		"status":     utils.ANALYSIS_PROCESSING,
		"progress":   0,
		"type":       analysisType,
	})
}

func GetAnalysisStatusHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try GET !")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	analysisId := r.URL.Query().Get("analysisId")
	if len(analysisId) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No Analysis ID provided.")
		return
	}

	analysisHexID, err := primitive.ObjectIDFromHex(analysisId)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid analysisId format")
		return
	}

	// ownership is part of the lookup filter, a foreign job reads as absent.
	analysis, err := repository.GetAnalysisByID(analysisHexID, ownerID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	utils.JSONResponse(w, http.StatusOK, analysisSnapshot(analysis))
}

func ListAnalysesHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try GET !")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	analyses, err := repository.GetAnalysesByOwner(ownerID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch analyses")
		return
	}

	snapshots := make([]map[string]interface{}, 0, len(analyses))
	for i := range analyses {
		snapshots = append(snapshots, analysisSnapshot(&analyses[i]))
	}

	utils.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"analyses": snapshots,
		"count":    len(snapshots),
	})
}

// analysisSnapshot shapes a job record for API consumers. The result data
// is only exposed once the job is ready, watchers of a running or failed
// job see data null.
func analysisSnapshot(analysis *models.AiAnalysis) map[string]interface{} {
	snapshot := map[string]interface{}{
		"analysisId": analysis.ID.Hex(),
		"surveyIds":  analysis.SurveyIDs,
		"type":       analysis.Type,
		"status":     analysis.Status,
		"progress":   analysis.Progress,
		"createdAt":  analysis.CreatedAt,
		"updatedAt":  analysis.UpdatedAt,
		"data":       nil,
	}

	if analysis.Status == utils.ANALYSIS_READY {
		snapshot["data"] = analysis.Data
	}

	return snapshot
}
