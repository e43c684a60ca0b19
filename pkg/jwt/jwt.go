package jwt

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"
	"github.com/dgrijalva/jwt-go"

	"SurveyPulse/internal/utils"
)

var jwtSecretKey = []byte(secretFromEnv())

func secretFromEnv() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret;
	}
	return "this-is-jwt-secret-key" // dev fallback only.
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

func GenerateToken(userId, email string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		UserID: userId,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			Issuer:    utils.JWT_CLAIM_ISSUER,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecretKey)
}

// validate the jwt token
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// jwt middleware
func Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(utils.AUTHORIZATION_HEADER);

		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized);
			return;
		}

		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
            http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
            return
        }

		tokenString := authHeader[7:]
        claims, err := ValidateToken(tokenString)
        if err != nil {
            http.Error(w, "Invalid token", http.StatusUnauthorized)
            return
        }

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
        next.ServeHTTP(w, r.WithContext(ctx))
	}
}

type contextKey string

// ClaimsContextKey is where Middleware stores the validated claims.
var ClaimsContextKey contextKey = "userClaims"

// ClaimsFromContext pulls the authenticated user out of a request context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims);
	return claims, ok;
}
