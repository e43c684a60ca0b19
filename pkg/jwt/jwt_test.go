package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("65f000000000000000000001", "creator@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != "65f000000000000000000001" {
		t.Errorf("unexpected userID in claims: %s", claims.UserID)
	}
	if claims.Email != "creator@example.com" {
		t.Errorf("unexpected email in claims: %s", claims.Email)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should not validate")
	}
}

func TestMiddlewareStoresClaims(t *testing.T) {
	token, err := GenerateToken("65f000000000000000000002", "owner@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotUserID string
	handler := Middleware(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Error("claims missing from request context")
			return
		}
		gotUserID = claims.UserID
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/surveys", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "65f000000000000000000002" {
		t.Errorf("unexpected userID from context: %s", gotUserID)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := Middleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without auth header")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/surveys", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
