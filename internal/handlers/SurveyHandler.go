package handlers

import (
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/repository"
	"SurveyPulse/internal/services"
	"SurveyPulse/internal/utils"
	"SurveyPulse/pkg/jwt"

	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateSurveyHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		utils.ErrorResponse(w, http.StatusBadRequest, "Try out POST request.")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	var newSurvey models.Survey
	if err := json.NewDecoder(r.Body).Decode(&newSurvey); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Something wrong with request body format")
		return
	}

	if len(newSurvey.Title) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "Survey title is required.")
		return
	}

	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	newSurvey.CreatorID = creatorID
	newSurvey.Draft = utils.UNPUBLISHED // surveys start unpublished, a PATCH publishes them.

	surveyID, err := services.SaveSurvey(newSurvey)
	if err != nil {
		log.Println("Something wrong while saving survey.")
		utils.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Survey is saved successfully. Id - " + *surveyID)
	utils.JSONResponse(w, http.StatusCreated, map[string]string{
		"message":  "Survey saved successfully.",
		"surveyId": *surveyID,
	})
}

func GetSurveyHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try GET !")
		return
	}

	surveyId := r.URL.Query().Get("surveyId")
	if len(surveyId) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No Survey ID provided.")
		return
	}

	surveyHexID, err := primitive.ObjectIDFromHex(surveyId)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid surveyId format")
		return
	}

	survey, err := repository.GetSurveyByID(surveyHexID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}

	utils.JSONResponse(w, http.StatusOK, survey)
}

func ListSurveysHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try GET !")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	surveys, err := repository.GetSurveysByCreator(creatorID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch surveys")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"surveys": surveys,
		"count":   len(surveys),
	})
}

func PublishSurveyHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPatch {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try PATCH !")
		return
	}

	surveyId := r.URL.Query().Get("surveyId")
	draft := r.URL.Query().Get("draft")

	if len(draft) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No draft state provided.")
		return
	}

	switch draft {
	case utils.PUBLISHED, utils.UNPUBLISHED:
		// do nothing - valid state
	default:
		utils.ErrorResponse(w, http.StatusBadRequest, "The provided draft state is invalid. Only 'published' and 'unpublished' are allowed.")
		return
	}

	if len(surveyId) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No Survey ID provided.")
		return
	}

	surveyHexID, err := primitive.ObjectIDFromHex(surveyId)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid surveyId format")
		return
	}

	err = services.UpdateSurveyDraft(surveyHexID, draft)
	if err != nil {
		log.Println(err.Error())
		utils.ErrorResponse(w, http.StatusInternalServerError, "Something went wrong while updating draft state.")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Updated draft state of survey %s to %s", surveyId, draft),
	})
}

func CreateQuestionHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		utils.ErrorResponse(w, http.StatusBadRequest, "Try out POST request.")
		return
	}

	var newQuestion models.Question
	if err := json.NewDecoder(r.Body).Decode(&newQuestion); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Something wrong with request body format")
		return
	}

	if newQuestion.SurveyID.IsZero() {
		utils.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}
	if len(newQuestion.Text) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "Question text is required.")
		return
	}

	switch newQuestion.Type {
	case utils.QUESTION_TEXT, utils.QUESTION_MULTIPLE_CHOICE, utils.QUESTION_SINGLE_CHOICE, utils.QUESTION_DROPDOWN, utils.QUESTION_CHECKBOX:
		// valid type
	default:
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid question type.")
		return
	}

	// survey must exist before attaching questions to it.
	if _, err := repository.GetSurveyByID(newQuestion.SurveyID); err != nil {
		utils.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}

	questionID, err := services.SaveQuestion(newQuestion)
	if err != nil {
		log.Println("Something wrong while saving question.")
		utils.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSONResponse(w, http.StatusCreated, map[string]string{
		"message":    "Question saved successfully.",
		"questionId": *questionID,
	})
}

func ListQuestionsHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try GET !")
		return
	}

	surveyId := r.URL.Query().Get("surveyId")
	if len(surveyId) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No Survey ID provided.")
		return
	}

	surveyHexID, err := primitive.ObjectIDFromHex(surveyId)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid surveyId format")
		return
	}

	questions, err := services.GetQuestionsBySurvey(surveyHexID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

func SubmitResponseHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		utils.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Try POST !")
		return
	}

	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Missing auth claims")
		return
	}

	var newResponse models.Response
	if err := json.NewDecoder(r.Body).Decode(&newResponse); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if newResponse.SurveyID.IsZero() {
		utils.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	survey, err := repository.GetSurveyByID(newResponse.SurveyID)
	if err != nil || survey.Draft != utils.PUBLISHED {
		utils.ErrorResponse(w, http.StatusBadRequest, "Survey not published or not found")
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}
	newResponse.UserID = userID

	responseID, err := services.SaveResponse(newResponse)
	if err != nil {
		log.Printf("Failed to save response: %v", err)
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, map[string]string{
		"message":    "Response recorded successfully.",
		"responseId": *responseID,
	})
}
