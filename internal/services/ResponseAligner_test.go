package services

import (
	"testing"
	"time"

	"SurveyPulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAlignResponsesEndToEnd(t *testing.T) {
	// survey with a free-text question and a choice question, two
	// respondents: the first answers both, the second only the choice.
	surveyID := primitive.NewObjectID()
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	user1 := primitive.NewObjectID()
	user2 := primitive.NewObjectID()

	tokens := map[string]string{q1.Hex(): "q1", q2.Hex(): "q2"}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user1, SubmittedAt: base,
			Answers: []models.Answer{
				{QuestionID: q1, Value: "hi"},
				{QuestionID: q2, Value: "a"},
			},
		},
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user2, SubmittedAt: base.Add(time.Minute),
			Answers: []models.Answer{
				{QuestionID: q2, Value: "b"},
			},
		},
	}

	matrix, count := AlignResponses(responses, tokens)

	if count != 2 {
		t.Fatalf("expected 2 respondents, got %d", count)
	}
	if len(matrix) != 2 {
		t.Fatalf("expected 2 question keys, got %d", len(matrix))
	}

	wantQ1 := []string{"hi", ""}
	wantQ2 := []string{"a", "b"}
	for i := range wantQ1 {
		if matrix["q1"][i] != wantQ1[i] {
			t.Errorf("q1[%d]: expected %q, got %q", i, wantQ1[i], matrix["q1"][i])
		}
		if matrix["q2"][i] != wantQ2[i] {
			t.Errorf("q2[%d]: expected %q, got %q", i, wantQ2[i], matrix["q2"][i])
		}
	}
}

func TestAlignResponsesKeepsOnlyLatestSubmission(t *testing.T) {
	surveyID := primitive.NewObjectID()
	q1 := primitive.NewObjectID()
	user := primitive.NewObjectID()

	tokens := map[string]string{q1.Hex(): "q1"}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user, SubmittedAt: base,
			Answers: []models.Answer{{QuestionID: q1, Value: "first try"}},
		},
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user, SubmittedAt: base.Add(time.Hour),
			Answers: []models.Answer{{QuestionID: q1, Value: "second try"}},
		},
	}

	matrix, count := AlignResponses(responses, tokens)

	if count != 1 {
		t.Fatalf("expected 1 respondent after dedup, got %d", count)
	}
	if matrix["q1"][0] != "second try" {
		t.Errorf("expected superseding answer, got %q", matrix["q1"][0])
	}

	// earlier answers must be fully absent
	for _, values := range matrix {
		for _, v := range values {
			if v == "first try" {
				t.Error("superseded answer leaked into the matrix")
			}
		}
	}
}

func TestAlignResponsesDedupOrderIndependent(t *testing.T) {
	// the later submission wins even when it arrives first in the input
	surveyID := primitive.NewObjectID()
	q1 := primitive.NewObjectID()
	user := primitive.NewObjectID()

	tokens := map[string]string{q1.Hex(): "q1"}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user, SubmittedAt: base.Add(time.Hour),
			Answers: []models.Answer{{QuestionID: q1, Value: "newer"}},
		},
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user, SubmittedAt: base,
			Answers: []models.Answer{{QuestionID: q1, Value: "older"}},
		},
	}

	matrix, _ := AlignResponses(responses, tokens)
	if matrix["q1"][0] != "newer" {
		t.Errorf("expected %q, got %q", "newer", matrix["q1"][0])
	}
}

func TestAlignResponsesSkipsUnknownQuestions(t *testing.T) {
	surveyID := primitive.NewObjectID()
	known := primitive.NewObjectID()
	deleted := primitive.NewObjectID()
	user := primitive.NewObjectID()

	tokens := map[string]string{known.Hex(): "q1"}

	responses := []models.Response{
		{
			ID: primitive.NewObjectID(), SurveyID: surveyID, UserID: user,
			SubmittedAt: time.Now(),
			Answers: []models.Answer{
				{QuestionID: known, Value: "kept"},
				{QuestionID: deleted, Value: "stale"},
			},
		},
	}

	matrix, count := AlignResponses(responses, tokens)

	if count != 1 {
		t.Fatalf("expected 1 respondent, got %d", count)
	}
	if len(matrix) != 1 {
		t.Fatalf("stale question reference created a matrix key: %v", matrix)
	}
	if matrix["q1"][0] != "kept" {
		t.Errorf("expected %q, got %q", "kept", matrix["q1"][0])
	}
}

func TestAlignResponsesMatrixShape(t *testing.T) {
	// every question key must have exactly one slot per respondent, and
	// the non-empty entries must match the recorded answer pairs.
	surveyID := primitive.NewObjectID()
	questionIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	tokens := map[string]string{}
	for i, id := range questionIDs {
		tokens[id.Hex()] = []string{"q1", "q2", "q3"}[i]
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var responses []models.Response
	answered := 0
	for i := 0; i < 4; i++ {
		answers := []models.Answer{}
		for j := 0; j <= i%3; j++ {
			answers = append(answers, models.Answer{QuestionID: questionIDs[j], Value: "v"})
			answered++
		}
		responses = append(responses, models.Response{
			ID: primitive.NewObjectID(), SurveyID: surveyID,
			UserID: primitive.NewObjectID(), SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			Answers: answers,
		})
	}

	matrix, count := AlignResponses(responses, tokens)

	if count != 4 {
		t.Fatalf("expected 4 respondents, got %d", count)
	}
	if len(matrix) != len(tokens) {
		t.Fatalf("expected %d keys, got %d", len(tokens), len(matrix))
	}

	nonEmpty := 0
	for token, values := range matrix {
		if len(values) != count {
			t.Errorf("%s: expected %d slots, got %d", token, count, len(values))
		}
		for _, v := range values {
			if v != "" {
				nonEmpty++
			}
		}
	}
	if nonEmpty != answered {
		t.Errorf("expected %d non-empty entries, got %d", answered, nonEmpty)
	}
}

func TestAlignResponsesNoRespondents(t *testing.T) {
	q1 := primitive.NewObjectID()
	tokens := map[string]string{q1.Hex(): "q1"}

	matrix, count := AlignResponses(nil, tokens)

	if count != 0 {
		t.Fatalf("expected 0 respondents, got %d", count)
	}
	if len(matrix["q1"]) != 0 {
		t.Errorf("expected empty sequence for q1, got %v", matrix["q1"])
	}
}
