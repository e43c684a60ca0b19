package services

import (
	"SurveyPulse/internal/database"
	"SurveyPulse/internal/models"
	"SurveyPulse/internal/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AuthCacheTTL = 48 * time.Hour
)

func FetchUserFromEmail(email string) (*models.User, error) {
	redisDb := database.GetRedisInstance();
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute * 1);
	defer cancel();

	redisKey := utils.USER_KEY_PREFIX + email;
	cachedUser, err := redisDb.GetClient().Get(ctx, redisKey).Result();

	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cachedUser), &user); err != nil {
			log.Printf("Error unmarshalling cached user : %v", err);
		} else {
			log.Printf("User %s found in Redis cache", email)
			return &user, nil
		}
	}

	// fallback to mongo
	log.Printf("User %s not found in Redis, querying MongoDB", email)
	mongoDb := database.GetMongoInstance();
	usersCollection := mongoDb.GetCollection(utils.USERS_COLLECTION);

	var user models.User;
	err = usersCollection.FindOne(ctx, map[string]string{"email": email}).Decode(&user);
	if err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	// cache the user to redis
	if err := cacheUserInRedis(&user); err != nil {
		log.Printf("Warning: Failed to cache user in Redis: %v", err)
	}
	return &user, nil;
}

func cacheUserInRedis(user *models.User) error {
	redisDb := database.GetRedisInstance();
	ctx, cancel := context.WithTimeout(context.Background(), 60 * time.Second);
	defer cancel();

	userJson, err := json.Marshal(user);
	if err != nil {
		return fmt.Errorf("failed to marshal user for Redis: %v", err)
	}

	redisKey := utils.USER_KEY_PREFIX + user.Email;
	err = redisDb.GetClient().Set(ctx, redisKey, userJson, AuthCacheTTL).Err();
	if err != nil {
		return fmt.Errorf("failed to cache user in Redis: %v", err)
	}

	return nil
}

func InvalidateUserCache(email string) error {
	redisDb := database.GetRedisInstance();

	redisKey := utils.USER_KEY_PREFIX + email;
	err := redisDb.GetClient().Del(context.Background(), redisKey).Err();
	if err != nil {
		return fmt.Errorf("failed to invalidate user cache: %v", err);
	}

	log.Printf("User cache invalidated for: %s", email)
	return nil
}

func SaveUser(user models.User) error {
	mongoDb := database.GetMongoInstance();
	usersCollection := mongoDb.GetCollection(utils.USERS_COLLECTION);

	ctx, cancel := context.WithTimeout(context.Background(), 1 * time.Minute);
	defer cancel();

	now := time.Now().UTC().Truncate(time.Millisecond);
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID();
	}
	user.CreatedAt = now
	user.UpdatedAt = now;

	// save the model in mongo
	_, err := usersCollection.InsertOne(ctx, user);
	if err != nil {
		return fmt.Errorf("failed to save user to MongoDB: %v", err);
	}

	log.Printf("User %s saved to MongoDB", user.Email)

	// Cache in Redis
	if err := cacheUserInRedis(&user); err != nil {
		log.Printf("Warning: Failed to cache user in Redis: %v", err)
		// Don't return error here as MongoDB save was successful
	}

	return nil
}
