package kafkaImpl

import (
	"SurveyPulse/internal/ai"
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/repository"
	"SurveyPulse/internal/utils"

	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var aiClient *ai.Client;

// InitAnalyzer wires the external analyzer client used by the worker.
func InitAnalyzer(client *ai.Client) {
	aiClient = client;
}

// runAnalysis executes one detached analysis job end to end. The HTTP
// response for this job went out long ago; every failure here resolves
// to the failed state instead of propagating anywhere.
func runAnalysis(event AnalysisRequestedEvent) {
	analysisID, err := primitive.ObjectIDFromHex(event.AnalysisID);
	if err != nil {
		log.Printf("Invalid analysis ID in event %s: %v", event.EventID, err);
		return;
	}

	log.Printf("Analysis %s started (owner=%s, surveys=%d)",
		event.AnalysisID, event.OwnerID, len(event.Dataset.Surveys))

	// starting analysis
	if !checkpoint(analysisID, 10) {
		return;
	}

	// preparing request
	if !checkpoint(analysisID, 20) {
		return;
	}

	if aiClient == nil {
		failAnalysis(analysisID, "analyzer client not initialized");
		return;
	}

	result, err := aiClient.AnalyzeSurveyData(&event.Dataset);
	if err != nil {
		failAnalysis(analysisID, fmt.Sprintf("analyzer call failed: %v", err));
		return;
	}

	// processing response
	if !checkpoint(analysisID, 70) {
		return;
	}

	// map the short tokens in the result back to real identifiers
	converted := ConvertTokensToRealIDs(result, event.Dataset.ReverseSurveyIDMap);

	// finalizing
	if !checkpoint(analysisID, 90) {
		return;
	}

	if err := repository.MarkAnalysisReady(analysisID, *converted); err != nil {
		failAnalysis(analysisID, fmt.Sprintf("failed to persist result: %v", err));
		return;
	}

	emitProgress(analysisID, utils.ANALYSIS_READY, 100);
	log.Printf("Analysis completed successfully: %s", event.AnalysisID)
}


// ConvertTokensToRealIDs rewrites pseudonymized survey tokens in the
// analyzer result back to stored identifiers. Tokens missing from the
// reverse map pass through unchanged; the analyzer is instructed to only
// echo supplied tokens, so an unknown one is logged rather than fatal.
// Question tokens never appear in the documented output shape, so only
// the survey map is consulted here.
func ConvertTokensToRealIDs(data *models.AnalysisData, reverseSurveys map[string]string) *models.AnalysisData {
	converted := *data;
	converted.Surveys = make([]models.SurveySummary, len(data.Surveys));

	for i, summary := range data.Surveys {
		converted.Surveys[i] = summary;
		converted.Surveys[i].SurveyID = resolveToken(summary.SurveyID, reverseSurveys);
	}

	return &converted;
}

func resolveToken(token string, reverse map[string]string) string {
	if realID, known := reverse[token]; known {
		return realID;
	}
	log.Printf("Warning: unrecognized token %q in analyzer result, passing through", token)
	return token;
}


// checkpoint bumps progress and notifies watchers. Returns false when the
// job could not be updated, after resolving it to failed.
func checkpoint(analysisID primitive.ObjectID, progress int) bool {
	if err := repository.UpdateAnalysisProgress(analysisID, progress); err != nil {
		failAnalysis(analysisID, fmt.Sprintf("failed to update progress: %v", err));
		return false;
	}

	emitProgress(analysisID, utils.ANALYSIS_PROCESSING, progress);
	return true;
}

func failAnalysis(analysisID primitive.ObjectID, cause string) {
	log.Printf("Analysis failed: %s - %s", analysisID.Hex(), cause);

	if err := repository.MarkAnalysisFailed(analysisID, cause); err != nil {
		log.Printf("Warning: failed to persist failed state for %s: %v", analysisID.Hex(), err);
	}

	emitProgress(analysisID, utils.ANALYSIS_FAILED, 0);
}

// emitProgress is best effort. Watchers fall back to polling, the job
// record stays the source of truth.
func emitProgress(analysisID primitive.ObjectID, status string, progress int) {
	progressEvent := AnalysisProgressEvent{
		EventID: primitive.NewObjectID().Hex(),
		Type: utils.ANALYSIS_PROGRESS_TOPIC,
		AnalysisID: analysisID.Hex(),
		Status: status,
		Progress: progress,
		Timestamp: time.Now(),
	}

	if err := Produce(utils.ANALYSIS_PROGRESS_TOPIC, progressEvent.AnalysisID, progressEvent); err != nil {
		log.Printf("Warning: failed to emit progress event: %v", err);
	}
}
