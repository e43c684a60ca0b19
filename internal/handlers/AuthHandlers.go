package handlers

import (
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/services"
	"SurveyPulse/internal/utils"
	"SurveyPulse/pkg/jwt"

	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func RegisterUserHandler(w http.ResponseWriter, r *http.Request) {

	if (r.Method != http.MethodPost) {
		utils.ErrorResponse(w, http.StatusBadRequest, "Try out POST request.");
		return;
	}

	var user models.User;
	err := json.NewDecoder(r.Body).Decode(&user);
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Something wrong with request body format");
		return;
	}

	if user.Email == "" || user.PasswordHash == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "email and password are required");
		return;
	}

	// check whether user exists with the provided email
	fetchedUser, _ := services.FetchUserFromEmail(user.Email);
	if fetchedUser != nil {
		utils.ErrorResponse(w, http.StatusConflict, "User already exists for the given email - "+user.Email);
		return;
	}

	// hash password
	hashedPassword, err := utils.HashPassword(user.PasswordHash);
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to process password")
		return
	}
	user.PasswordHash = hashedPassword;
	user.ID = primitive.NewObjectID();

	// generate jwt key
	token, err := jwt.GenerateToken(user.ID.Hex(), user.Email);
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate authtoken.")
		return
	}

	// save user
	if err := services.SaveUser(user); err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("User registered successfully %s", user.Email),
		"token":   token,
	});

}

func LoginUserHandler(w http.ResponseWriter, r *http.Request) {

	if (r.Method != http.MethodPost) {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "The current method is not allowed.Try POST method.")
		return;
	}

	var credentials models.User
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userFromDb, err := services.FetchUserFromEmail(credentials.Email);
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// verify password
	if (! utils.CheckPasswordHash(credentials.PasswordHash, userFromDb.PasswordHash)){
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials (password)")
		return
	}

	token, err := jwt.GenerateToken(userFromDb.ID.Hex(), userFromDb.Email)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userFromDb,
	});
}
