package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"SurveyPulse/internal/models"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	apiKey  string
	client  *http.Client
	model   string
	baseURL string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		// the analysis call can run long, so the transport timeout is generous
		client:  &http.Client{Timeout: 180 * time.Second},
		model:   "gpt-4o-2024-11-20",
		baseURL: defaultBaseURL,
	}
}

func NewClientWithModel(apiKey, model string) *Client {
	c := NewClient(apiKey)
	c.model = model
	return c
}

// AnalyzeSurveyData sends the pseudonymized dataset to the model and
// decodes the structured result. Survey identifiers in the result are
// still short tokens; reversing them is the caller's job.
func (c *Client) AnalyzeSurveyData(dataset *models.AnalysisDataset) (*models.AnalysisData, error) {

	// strip the reverse maps so real identifiers never leave the system
	trimmed := *dataset
	trimmed.ReverseSurveyIDMap = nil
	trimmed.ReverseQuestionIDMap = nil

	datasetJSON, err := json.Marshal(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %v", err)
	}

	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": analysisPrompt,
			},
			{
				"role":    "user",
				"content": fmt.Sprintf("Analyze the following survey data:\n\n%s", string(datasetJSON)),
			},
		},
		"temperature": 0,
		"seed":        42,
		"response_format": map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   "survey_analysis_response",
				"strict": true,
				"schema": analysisResponseSchema,
			},
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return nil, err
	}
	if openaiResp.Error.Message != "" {
		return nil, fmt.Errorf("OpenAI API error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	var result models.AnalysisData
	if err := json.Unmarshal([]byte(openaiResp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %v", err)
	}

	return &result, nil
}

// GetModel returns the model used by this client
func (c *Client) GetModel() string {
	return c.model
}
