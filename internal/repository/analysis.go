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
	AnalysisCacheTTL = 10 * time.Minute
)

// CreateAnalysis persists a fresh job record in processing state.
func CreateAnalysis(analysis models.AiAnalysis) error {
	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	_, err := analysesCollection.InsertOne(ctx, analysis);
	if err != nil {
		return fmt.Errorf("failed to save analysis to MongoDB: %v", err)
	}

	log.Printf("Analysis %s created for owner %s", analysis.ID.Hex(), analysis.OwnerID.Hex())
	return nil
}

// UpdateAnalysisProgress bumps progress on a job that is still processing.
// $max keeps polled progress monotonic even if checkpoint writes land out
// of order; terminal jobs are never touched because of the status filter.
func UpdateAnalysisProgress(analysisID primitive.ObjectID, progress int) error {
	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	_, err := analysesCollection.UpdateOne(
		ctx,
		bson.M{"_id": analysisID, "status": utils.ANALYSIS_PROCESSING},
		bson.M{
			"$max": bson.M{"progress": progress},
			"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis progress in MongoDB: %v", err)
	}

	invalidateAnalysisCache(analysisID);
	return nil
}

// MarkAnalysisReady writes the terminal ready state with the final result.
func MarkAnalysisReady(analysisID primitive.ObjectID, data models.AnalysisData) error {
	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	_, err := analysesCollection.UpdateOne(
		ctx,
		bson.M{"_id": analysisID, "status": utils.ANALYSIS_PROCESSING},
		bson.M{
			"$set": bson.M{
				"status": utils.ANALYSIS_READY,
				"progress": 100,
				"data": data,
				"updated_at": time.Now().UTC().Truncate(time.Millisecond),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to mark analysis ready in MongoDB: %v", err)
	}

	invalidateAnalysisCache(analysisID);
	log.Printf("Analysis %s marked ready", analysisID.Hex())
	return nil
}

// MarkAnalysisFailed writes the terminal failed state. Progress resets to 0
// and the placeholder data stays as it was at creation. The causing error is
// kept on the record for operators but never exposed through the API.
func MarkAnalysisFailed(analysisID primitive.ObjectID, cause string) error {
	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	_, err := analysesCollection.UpdateOne(
		ctx,
		bson.M{"_id": analysisID, "status": utils.ANALYSIS_PROCESSING},
		bson.M{
			"$set": bson.M{
				"status": utils.ANALYSIS_FAILED,
				"progress": 0,
				"error_detail": cause,
				"updated_at": time.Now().UTC().Truncate(time.Millisecond),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to mark analysis failed in MongoDB: %v", err)
	}

	invalidateAnalysisCache(analysisID);
	log.Printf("Analysis %s marked failed: %s", analysisID.Hex(), cause)
	return nil
}


// GetAnalysisByID returns a job snapshot scoped to its owner.
func GetAnalysisByID(analysisID, ownerID primitive.ObjectID) (*models.AiAnalysis, error) {
	analysis, err := fetchAnalysisFromCache(analysisID);
	if err == nil && analysis.OwnerID == ownerID {
		log.Println("Cache Hit - The analysis is present in redis.");
		return analysis, nil;
	}

	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	var result models.AiAnalysis;
	err = analysesCollection.FindOne(ctx, bson.M{
		"_id": analysisID,
		"owner_id": ownerID,
	}).Decode(&result);
	if err != nil {
		return nil, fmt.Errorf("analysis not found in MongoDB: %v", err)
	}

	if err := cacheAnalysisInRedis(&result); err != nil {
		log.Printf("Warning: Failed to cache analysis in Redis: %v", err);
	}

	return &result, nil;
}

// FindAnalysisByID looks a job up without owner scoping. Used by the
// websocket layer, which sits behind the auth middleware already.
func FindAnalysisByID(analysisID primitive.ObjectID) (*models.AiAnalysis, error) {
	analysis, err := fetchAnalysisFromCache(analysisID);
	if err == nil {
		return analysis, nil;
	}

	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	var result models.AiAnalysis;
	err = analysesCollection.FindOne(ctx, bson.M{"_id": analysisID}).Decode(&result);
	if err != nil {
		return nil, fmt.Errorf("analysis not found in MongoDB: %v", err)
	}

	return &result, nil;
}

// GetAnalysesByOwner lists every job for a user, newest first.
func GetAnalysesByOwner(ownerID primitive.ObjectID) ([]models.AiAnalysis, error) {
	mongoDb := database.GetMongoInstance();
	analysesCollection := mongoDb.GetCollection(utils.ANALYSES_COLLECTION);
	ctx := context.Background();

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := analysesCollection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find analyses in MongoDB: %v", err)
	}
	defer cursor.Close(ctx);

	var analyses []models.AiAnalysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %v", err)
	}

	return analyses, nil
}


func fetchAnalysisFromCache(analysisID primitive.ObjectID) (*models.AiAnalysis, error) {
	redisDb := database.GetRedisInstance();
	ctx := context.Background();

	analysisKey := utils.ANALYSIS_KEY_PREFIX + analysisID.Hex();
	analysisJson, err := redisDb.GetClient().Get(ctx, analysisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("analysis not found in Redis: %v", err)
	}

	var analysis models.AiAnalysis
	if err = json.Unmarshal([]byte(analysisJson), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis from Redis: %v", err);
	}

	return &analysis, nil
}

func cacheAnalysisInRedis(analysis *models.AiAnalysis) error {
	redisDb := database.GetRedisInstance();
	ctx := context.Background();

	analysisKey := utils.ANALYSIS_KEY_PREFIX + analysis.ID.Hex()
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis for Redis: %v", err)
	}

	err = redisDb.GetClient().Set(ctx, analysisKey, analysisJSON, AnalysisCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache analysis in Redis: %v", err)
	}

	return nil
}

// every write invalidates the snapshot so pollers never see a stale
// terminal state hiding a newer one.
func invalidateAnalysisCache(analysisID primitive.ObjectID) {
	redisDb := database.GetRedisInstance();
	analysisKey := utils.ANALYSIS_KEY_PREFIX + analysisID.Hex();
	redisDb.GetClient().Del(context.Background(), analysisKey);
}
