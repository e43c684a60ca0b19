package ai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SurveyPulse/internal/models"
)

func testDataset() *models.AnalysisDataset {
	return &models.AnalysisDataset{
		Surveys: []models.SurveyMeta{{SurveyID: "s1", Title: "T", Description: "D"}},
		Questions: []models.QuestionMeta{{QuestionID: "q1", SurveyID: "s1", Question: "Q?", Type: "free-text", Options: []string{}}},
		ResponseAlignment: models.ResponseAlignment{Type: "index", Definition: "d"},
		ResponsesByQuestion: map[string][]string{"q1": {"hi"}},
		ResponseCount: 1,
		ReverseSurveyIDMap: map[string]string{"s1": "65f000000000000000000001"},
		ReverseQuestionIDMap: map[string]string{"q1": "65f000000000000000000002"},
	}
}

func TestAnalyzeSurveyDataDecodesResult(t *testing.T) {
	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)

		content := models.AnalysisData{
			Overview: "1 out of 1 responses were used",
			Surveys: []models.SurveySummary{{SurveyID: "s1", ResponseCountUsed: 1}},
			DataQualityNotes: models.DataQualityNotes{ConfidenceScore: 0.4, ConfidenceExplanation: "tiny sample"},
		}
		contentJSON, _ := json.Marshal(content)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": string(contentJSON)}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.baseURL = server.URL

	result, err := client.AnalyzeSurveyData(testDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Overview == "" || len(result.Surveys) != 1 || result.Surveys[0].SurveyID != "s1" {
		t.Errorf("unexpected result: %+v", result)
	}

	// real identifiers must never appear in the outbound request
	if strings.Contains(string(capturedBody), "65f000000000000000000001") {
		t.Error("real survey id leaked into the analyzer request")
	}
	if strings.Contains(string(capturedBody), "reverseSurveyIdMap") {
		t.Error("reverse map key leaked into the analyzer request")
	}
	if !strings.Contains(string(capturedBody), "responsesByQuestion") {
		t.Error("dataset missing from the analyzer request")
	}
}

func TestAnalyzeSurveyDataAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.baseURL = server.URL

	if _, err := client.AnalyzeSurveyData(testDataset()); err == nil {
		t.Fatal("expected error from non-200 response")
	}
}

func TestAnalyzeSurveyDataMalformedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "not json at all"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.baseURL = server.URL

	if _, err := client.AnalyzeSurveyData(testDataset()); err == nil {
		t.Fatal("expected error for malformed analyzer content")
	}
}

func TestAnalyzeSurveyDataEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.baseURL = server.URL

	if _, err := client.AnalyzeSurveyData(testDataset()); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
