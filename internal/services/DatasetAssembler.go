package services

import (
	"errors"
	"log"

	"SurveyPulse/internal/models"
	"SurveyPulse/internal/repository"
	"SurveyPulse/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoSurveysFound = errors.New("no surveys found with the provided IDs")
	ErrNoQuestionsFound = errors.New("no questions found for the provided surveys")
)

// AssembleAnalysisDataset fetches everything the analyzer needs for the
// requested surveys and composes the pseudonymized payload.
func AssembleAnalysisDataset(surveyIDs []primitive.ObjectID) (*models.AnalysisDataset, error) {

	surveys, err := repository.GetSurveysByIDs(surveyIDs);
	if err != nil {
		return nil, err;
	}

	questions, err := repository.GetQuestionsForSurveys(surveyIDs);
	if err != nil {
		return nil, err;
	}

	responses, err := repository.GetEligibleResponses(surveyIDs);
	if err != nil {
		return nil, err;
	}

	return BuildAnalysisDataset(surveys, questions, responses);
}

// BuildAnalysisDataset is the pure composition step: pseudonymize, align,
// and pack the payload together with the reverse maps needed to undo the
// pseudonymization once the analyzer result comes back.
func BuildAnalysisDataset(surveys []models.Survey, questions []models.Question, responses []models.Response) (*models.AnalysisDataset, error) {

	if len(surveys) == 0 {
		return nil, ErrNoSurveysFound;
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsFound;
	}

	tokenMaps := BuildTokenMaps(surveys, questions);

	surveysFormatted := make([]models.SurveyMeta, len(surveys));
	for i, survey := range surveys {
		surveysFormatted[i] = models.SurveyMeta{
			SurveyID: tokenMaps.SurveyTokens[survey.ID.Hex()],
			Title: survey.Title,
			Description: survey.Description,
		}
	}

	questionsFormatted := make([]models.QuestionMeta, len(questions));
	for i, question := range questions {
		options := question.Options;
		if options == nil {
			options = []string{};
		}
		questionsFormatted[i] = models.QuestionMeta{
			QuestionID: tokenMaps.QuestionTokens[question.ID.Hex()],
			SurveyID: tokenMaps.SurveyTokens[question.SurveyID.Hex()],
			Question: question.Text,
			Type: MapQuestionType(question.Type),
			Options: options,
		}
	}

	matrix, respondentCount := AlignResponses(responses, tokenMaps.QuestionTokens);

	dataset := &models.AnalysisDataset{
		Surveys: surveysFormatted,
		Questions: questionsFormatted,
		ResponseAlignment: models.ResponseAlignment{
			Type: "index",
			Definition: `Index i refers to the same respondent across all questions. Empty string "" means missing answer.`,
		},
		ResponsesByQuestion: matrix,
		ResponseCount: respondentCount,
		ReverseSurveyIDMap: tokenMaps.ReverseSurveys,
		ReverseQuestionIDMap: tokenMaps.ReverseQuestions,
	}

	log.Printf("Assembled analysis dataset: %d surveys, %d questions, %d respondents",
		len(surveysFormatted), len(questionsFormatted), respondentCount)

	return dataset, nil
}

// MapQuestionType collapses the stored question type vocabulary into the
// reduced one the analyzer sees. Unknown types fall back to free-text.
func MapQuestionType(dbType string) string {
	switch dbType {
	case utils.QUESTION_TEXT:
		return utils.TYPE_FREE_TEXT;
	case utils.QUESTION_MULTIPLE_CHOICE, utils.QUESTION_SINGLE_CHOICE, utils.QUESTION_DROPDOWN, utils.QUESTION_CHECKBOX:
		return utils.TYPE_CHOICE;
	default:
		return utils.TYPE_FREE_TEXT;
	}
}
