package services

import (
	"SurveyPulse/internal/database"
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/repository"
	"SurveyPulse/internal/utils"

	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SaveSurvey(survey models.Survey) (*string, error) {
	mongoDb := database.GetMongoInstance();
	surveysCollection := mongoDb.GetCollection(utils.SURVEYS_COLLECTION);
	ctx := context.Background();

	now := time.Now().UTC().Truncate(time.Millisecond);
	survey.ID = primitive.NewObjectID();
	survey.CreatedAt = now
	survey.UpdatedAt = now;
	if survey.Draft == "" {
		survey.Draft = utils.UNPUBLISHED;
	}

	// save to mongo
	_, err := surveysCollection.InsertOne(ctx, survey);
	if err != nil {
		return nil, fmt.Errorf("failed to save survey to MongoDB: %v", err)
	}

	log.Printf("Survey %s saved to MongoDB for creator %s", survey.ID.Hex(), survey.CreatorID.Hex())

	if err := repository.CacheSurveyInRedis(&survey); err != nil {
		log.Printf("Warning: Failed to cache survey in Redis: %v", err)
	}

	idStr := survey.ID.Hex();
	return &idStr, nil
}

// update draft state for a survey (publish / unpublish)
func UpdateSurveyDraft(surveyID primitive.ObjectID, draft string) error {
	mongoDb := database.GetMongoInstance();
	surveysCollection := mongoDb.GetCollection(utils.SURVEYS_COLLECTION)
	ctx := context.Background()

	_, err := surveysCollection.UpdateOne(
		ctx,
		bson.M{"_id": surveyID},
		bson.M{
			"$set": bson.M{
				"draft": draft,
				"updated_at": time.Now().UTC().Truncate(time.Millisecond),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update survey draft state in MongoDB: %v", err)
	}

	repository.InvalidateSurveyCache(surveyID);

	log.Printf("Survey %s draft state updated to %s", surveyID.Hex(), draft)
	return nil
}

func SaveQuestion(question models.Question) (*string, error) {
	mongoDb := database.GetMongoInstance();
	questionsCollection := mongoDb.GetCollection(utils.QUESTIONS_COLLECTION);
	ctx := context.Background();

	now := time.Now().UTC().Truncate(time.Millisecond);
	question.ID = primitive.NewObjectID();
	question.CreatedAt = now;
	question.UpdatedAt = now;
	if question.Options == nil {
		question.Options = []string{};
	}

	_, err := questionsCollection.InsertOne(ctx, question);
	if err != nil {
		return nil, fmt.Errorf("failed to save question to MongoDB: %v", err)
	}

	log.Printf("Question %s saved to MongoDB for survey %s", question.ID.Hex(), question.SurveyID.Hex())

	idStr := question.ID.Hex();
	return &idStr, nil
}

// SaveResponse stores a submission as-is. Resubmissions are kept; the
// aligner picks the latest one per (respondent, survey) at analysis time.
func SaveResponse(response models.Response) (*string, error) {
	mongoDb := database.GetMongoInstance();
	responsesCollection := mongoDb.GetCollection(utils.RESPONSES_COLLECTION);
	ctx := context.Background();

	response.ID = primitive.NewObjectID();
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now().UTC().Truncate(time.Millisecond);
	}

	_, err := responsesCollection.InsertOne(ctx, response);
	if err != nil {
		return nil, fmt.Errorf("failed to save response to MongoDB: %v", err)
	}

	log.Printf("Response %s saved to MongoDB for survey %s", response.ID.Hex(), response.SurveyID.Hex())

	idStr := response.ID.Hex();
	return &idStr, nil
}

func GetQuestionsBySurvey(surveyID primitive.ObjectID) ([]models.Question, error) {
	mongoDb := database.GetMongoInstance();
	questionsCollection := mongoDb.GetCollection(utils.QUESTIONS_COLLECTION);
	ctx := context.Background();

	findOptions := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := questionsCollection.Find(ctx, bson.M{"survey_id": surveyID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find questions in MongoDB: %v", err)
	}
	defer cursor.Close(ctx);

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %v", err)
	}

	return questions, nil
}
