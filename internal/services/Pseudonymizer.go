package services

import (
	"fmt"

	"SurveyPulse/internal/models"
)

// TokenMaps holds the bidirectional short-id mappings for one analysis
// request. Built fresh per request, never cached or shared.
type TokenMaps struct {
	SurveyTokens   map[string]string // real survey id -> s<i>
	QuestionTokens map[string]string // real question id -> q<i>
	ReverseSurveys   map[string]string // s<i> -> real survey id
	ReverseQuestions map[string]string // q<i> -> real question id
}

// BuildTokenMaps enumerates the fetched surveys and questions in their
// given order and assigns s1..sN / q1..qM. Pure function of input order;
// no randomness, so the same fetch always yields the same tokens.
func BuildTokenMaps(surveys []models.Survey, questions []models.Question) TokenMaps {
	maps := TokenMaps{
		SurveyTokens: make(map[string]string),
		QuestionTokens: make(map[string]string),
		ReverseSurveys: make(map[string]string),
		ReverseQuestions: make(map[string]string),
	}

	for i, survey := range surveys {
		token := fmt.Sprintf("s%d", i+1);
		realID := survey.ID.Hex();
		maps.SurveyTokens[realID] = token;
		maps.ReverseSurveys[token] = realID;
	}

	for i, question := range questions {
		token := fmt.Sprintf("q%d", i+1);
		realID := question.ID.Hex();
		maps.QuestionTokens[realID] = token;
		maps.ReverseQuestions[token] = realID;
	}

	return maps
}
