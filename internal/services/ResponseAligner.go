package services

import (
	"SurveyPulse/internal/models"
)

// AlignResponses turns the raw response records into the index-aligned
// answer matrix keyed by question token, plus the respondent count.
//
// A respondent may have submitted a survey more than once; only the
// latest submission per (respondent, survey) pair survives. The order in
// which respondents are first seen fixes the index ordering for the whole
// matrix. Answers pointing at questions outside the token map (stale
// references to deleted questions) are skipped.
func AlignResponses(responses []models.Response, questionTokens map[string]string) (map[string][]string, int) {

	// respondent -> survey -> latest response
	userResponses := make(map[string]map[string]models.Response);
	var userOrder []string;

	for _, response := range responses {
		userID := response.UserID.Hex();
		surveyID := response.SurveyID.Hex();

		surveyMap, seen := userResponses[userID];
		if !seen {
			surveyMap = make(map[string]models.Response);
			userResponses[userID] = surveyMap;
			userOrder = append(userOrder, userID);
		}

		previous, exists := surveyMap[surveyID];
		if !exists || response.SubmittedAt.After(previous.SubmittedAt) {
			surveyMap[surveyID] = response;
		}
	}

	respondentCount := len(userOrder);

	// one slot per respondent for every known question, empty string
	// means no answer. The slice length never changes after this.
	matrix := make(map[string][]string);
	for _, token := range questionTokens {
		matrix[token] = make([]string, respondentCount);
	}

	for userIndex, userID := range userOrder {
		for _, response := range userResponses[userID] {
			for _, answer := range response.Answers {
				token, known := questionTokens[answer.QuestionID.Hex()];
				if !known {
					continue;
				}
				matrix[token][userIndex] = answer.Value;
			}
		}
	}

	return matrix, respondentCount
}
