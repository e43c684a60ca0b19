package utils

import (
	"testing"
)

func TestNormalizeSurveyIDsSingleString(t *testing.T) {
	ids, err := NormalizeSurveyIDs("65f000000000000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "65f000000000000000000001" {
		t.Errorf("expected single id slice, got %v", ids)
	}
}

func TestNormalizeSurveyIDsList(t *testing.T) {
	raw := []interface{}{"a1", "b2", "c3"}

	ids, err := NormalizeSurveyIDs(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a1" || ids[2] != "c3" {
		t.Errorf("expected [a1 b2 c3], got %v", ids)
	}
}

func TestNormalizeSurveyIDsRejectsEmpty(t *testing.T) {
	if _, err := NormalizeSurveyIDs(""); err == nil {
		t.Error("empty string should be rejected")
	}
	if _, err := NormalizeSurveyIDs([]interface{}{}); err == nil {
		t.Error("empty list should be rejected")
	}
}

func TestNormalizeSurveyIDsRejectsWrongTypes(t *testing.T) {
	if _, err := NormalizeSurveyIDs(42); err == nil {
		t.Error("number should be rejected")
	}
	if _, err := NormalizeSurveyIDs([]interface{}{"ok", 7}); err == nil {
		t.Error("mixed list should be rejected")
	}
	if _, err := NormalizeSurveyIDs(nil); err == nil {
		t.Error("nil should be rejected")
	}
}
