package services

import (
	"encoding/json"
	"testing"
	"time"

	"SurveyPulse/internal/models"
	"SurveyPulse/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildAnalysisDatasetErrors(t *testing.T) {
	surveys := makeSurveys(1)

	if _, err := BuildAnalysisDataset(nil, nil, nil); err != ErrNoSurveysFound {
		t.Errorf("expected ErrNoSurveysFound, got %v", err)
	}
	if _, err := BuildAnalysisDataset(surveys, nil, nil); err != ErrNoQuestionsFound {
		t.Errorf("expected ErrNoQuestionsFound, got %v", err)
	}
}

func TestBuildAnalysisDatasetComposition(t *testing.T) {
	survey := models.Survey{
		ID: primitive.NewObjectID(),
		Title: "Cafeteria feedback",
		Description: "How was lunch",
	}
	q1 := models.Question{
		ID: primitive.NewObjectID(), SurveyID: survey.ID, Order: 0,
		Text: "Anything to add?", Type: utils.QUESTION_TEXT,
	}
	q2 := models.Question{
		ID: primitive.NewObjectID(), SurveyID: survey.ID, Order: 1,
		Text: "Pick one", Type: utils.QUESTION_SINGLE_CHOICE, Options: []string{"a", "b"},
	}

	user1 := primitive.NewObjectID()
	user2 := primitive.NewObjectID()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{
			ID: primitive.NewObjectID(), SurveyID: survey.ID, UserID: user1, SubmittedAt: base,
			Answers: []models.Answer{{QuestionID: q1.ID, Value: "hi"}, {QuestionID: q2.ID, Value: "a"}},
		},
		{
			ID: primitive.NewObjectID(), SurveyID: survey.ID, UserID: user2, SubmittedAt: base.Add(time.Minute),
			Answers: []models.Answer{{QuestionID: q2.ID, Value: "b"}},
		},
	}

	dataset, err := BuildAnalysisDataset([]models.Survey{survey}, []models.Question{q1, q2}, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dataset.Surveys) != 1 || dataset.Surveys[0].SurveyID != "s1" {
		t.Fatalf("unexpected pseudonymized surveys: %+v", dataset.Surveys)
	}
	if dataset.Surveys[0].Title != "Cafeteria feedback" {
		t.Errorf("title not carried over: %+v", dataset.Surveys[0])
	}

	if len(dataset.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(dataset.Questions))
	}
	first := dataset.Questions[0]
	if first.QuestionID != "q1" || first.SurveyID != "s1" || first.Type != utils.TYPE_FREE_TEXT {
		t.Errorf("unexpected first question meta: %+v", first)
	}
	second := dataset.Questions[1]
	if second.QuestionID != "q2" || second.Type != utils.TYPE_CHOICE || len(second.Options) != 2 {
		t.Errorf("unexpected second question meta: %+v", second)
	}

	if dataset.ResponseCount != 2 {
		t.Errorf("expected responseCount 2, got %d", dataset.ResponseCount)
	}
	if got := dataset.ResponsesByQuestion["q1"]; got[0] != "hi" || got[1] != "" {
		t.Errorf("unexpected q1 sequence: %v", got)
	}
	if got := dataset.ResponsesByQuestion["q2"]; got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected q2 sequence: %v", got)
	}

	if dataset.ResponseAlignment.Type != "index" {
		t.Errorf("unexpected alignment descriptor: %+v", dataset.ResponseAlignment)
	}

	if dataset.ReverseSurveyIDMap["s1"] != survey.ID.Hex() {
		t.Errorf("reverse survey map broken: %v", dataset.ReverseSurveyIDMap)
	}
	if dataset.ReverseQuestionIDMap["q2"] != q2.ID.Hex() {
		t.Errorf("reverse question map broken: %v", dataset.ReverseQuestionIDMap)
	}
}

func TestDatasetSerializationOmitsReverseMapsWhenStripped(t *testing.T) {
	// the analyzer payload must not disclose real identifiers once the
	// reverse maps are nilled out before marshaling
	survey := makeSurveys(1)[0]
	question := models.Question{ID: primitive.NewObjectID(), SurveyID: survey.ID, Type: utils.QUESTION_TEXT}

	dataset, err := BuildAnalysisDataset([]models.Survey{survey}, []models.Question{question}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trimmed := *dataset
	trimmed.ReverseSurveyIDMap = nil
	trimmed.ReverseQuestionIDMap = nil

	raw, err := json.Marshal(trimmed)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := decoded["reverseSurveyIdMap"]; present {
		t.Error("reverseSurveyIdMap leaked into the serialized payload")
	}
	if _, present := decoded["reverseQuestionIdMap"]; present {
		t.Error("reverseQuestionIdMap leaked into the serialized payload")
	}
}

func TestMapQuestionType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{utils.QUESTION_TEXT, utils.TYPE_FREE_TEXT},
		{utils.QUESTION_MULTIPLE_CHOICE, utils.TYPE_CHOICE},
		{utils.QUESTION_SINGLE_CHOICE, utils.TYPE_CHOICE},
		{utils.QUESTION_DROPDOWN, utils.TYPE_CHOICE},
		{utils.QUESTION_CHECKBOX, utils.TYPE_CHOICE},
		{"rating_scale", utils.TYPE_FREE_TEXT}, // unknown defaults to free-text
		{"", utils.TYPE_FREE_TEXT},
	}

	for _, tc := range cases {
		if got := MapQuestionType(tc.in); got != tc.want {
			t.Errorf("MapQuestionType(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
