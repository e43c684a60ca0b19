package repository

import (
	"SurveyPulse/internal/database"
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/utils"

	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SurveyCacheTTL = 1 * time.Hour
)

// GetSurveysByIDs fetches the requested surveys sorted by _id so the
// pseudonymizer sees them in creation order.
func GetSurveysByIDs(surveyIDs []primitive.ObjectID) ([]models.Survey, error) {
	mongoDb := database.GetMongoInstance();
	surveysCollection := mongoDb.GetCollection(utils.SURVEYS_COLLECTION);
	ctx := context.Background();

	findOptions := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := surveysCollection.Find(ctx, bson.M{
		"_id": bson.M{"$in": surveyIDs},
	}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find surveys in MongoDB: %v", err)
	}
	defer cursor.Close(ctx);

	var surveys []models.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, fmt.Errorf("failed to decode surveys: %v", err)
	}

	log.Printf("Retrieved %d surveys from MongoDB", len(surveys))
	return surveys, nil
}

// GetQuestionsForSurveys fetches every question belonging to the given
// surveys, ascending by display order.
func GetQuestionsForSurveys(surveyIDs []primitive.ObjectID) ([]models.Question, error) {
	mongoDb := database.GetMongoInstance();
	questionsCollection := mongoDb.GetCollection(utils.QUESTIONS_COLLECTION);
	ctx := context.Background();

	findOptions := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := questionsCollection.Find(ctx, bson.M{
		"survey_id": bson.M{"$in": surveyIDs},
	}, findOptions)
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

// GetEligibleResponses fetches the raw responses for the given surveys,
// excluding anything flagged as spam. Deduplication happens later in the
// aligner, not in the query.
func GetEligibleResponses(surveyIDs []primitive.ObjectID) ([]models.Response, error) {
	mongoDb := database.GetMongoInstance();
	responsesCollection := mongoDb.GetCollection(utils.RESPONSES_COLLECTION);
	ctx := context.Background();

	cursor, err := responsesCollection.Find(ctx, bson.M{
		"survey_id": bson.M{"$in": surveyIDs},
		"is_flagged_spam": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find responses in MongoDB: %v", err)
	}
	defer cursor.Close(ctx);

	var responses []models.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %v", err)
	}

	log.Printf("Retrieved %d responses for %d surveys", len(responses), len(surveyIDs))
	return responses, nil
}


func GetSurveyByID(surveyID primitive.ObjectID) (*models.Survey, error) {
	survey, err := fetchSurveyFromCache(surveyID);
	if err == nil {
		log.Println("Cache Hit - The survey is present in redis.");
		return survey, nil;
	}

	return fetchSurveyFromMongoDB(surveyID);
}

func fetchSurveyFromCache(surveyID primitive.ObjectID) (*models.Survey, error) {
	redisDb := database.GetRedisInstance();
	ctx := context.Background();

	surveyKey := utils.SURVEY_KEY_PREFIX + surveyID.Hex();
	surveyJson, err := redisDb.GetClient().Get(ctx, surveyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("survey not found in Redis: %v", err)
	}

	var survey models.Survey
	if err = json.Unmarshal([]byte(surveyJson), &survey); err != nil {
		return nil, fmt.Errorf("failed to unmarshal survey from Redis: %v", err);
	}

	return &survey, nil
}

func fetchSurveyFromMongoDB(surveyID primitive.ObjectID) (*models.Survey, error) {
	mongoDb := database.GetMongoInstance();
	surveysCollection := mongoDb.GetCollection(utils.SURVEYS_COLLECTION);
	ctx := context.Background();

	var survey models.Survey;
	err := surveysCollection.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey);
	if err != nil {
		return nil, fmt.Errorf("survey not found in MongoDB: %v", err)
	}

	if err := CacheSurveyInRedis(&survey); err != nil {
		log.Printf("Warning: Failed to cache survey in Redis: %v", err);
	}

	return &survey, nil;
}

func CacheSurveyInRedis(survey *models.Survey) error {
	redisDb := database.GetRedisInstance();
	ctx := context.Background();

	surveyKey := utils.SURVEY_KEY_PREFIX + survey.ID.Hex()
	surveyJSON, err := json.Marshal(survey)
	if err != nil {
		return fmt.Errorf("failed to marshal survey for Redis: %v", err)
	}

	err = redisDb.GetClient().Set(ctx, surveyKey, surveyJSON, SurveyCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache survey in Redis: %v", err)
	}

	return nil
}

func InvalidateSurveyCache(surveyID primitive.ObjectID) {
	redisDb := database.GetRedisInstance();
	surveyKey := utils.SURVEY_KEY_PREFIX + surveyID.Hex();
	redisDb.GetClient().Del(context.Background(), surveyKey);
}

func GetSurveysByCreator(creatorID primitive.ObjectID) ([]models.Survey, error) {
	mongoDb := database.GetMongoInstance();
	surveysCollection := mongoDb.GetCollection(utils.SURVEYS_COLLECTION);
	ctx := context.Background();

	cursor, err := surveysCollection.Find(ctx, bson.M{"creator_id": creatorID})
	if err != nil {
		return nil, fmt.Errorf("failed to find surveys in MongoDB: %v", err)
	}
	defer cursor.Close(ctx);

	var surveys []models.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, fmt.Errorf("failed to decode surveys: %v", err)
	}

	return surveys, nil
}
