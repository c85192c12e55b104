package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"
	"culturalstay/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	redis    *redis.Client
}

func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, rdb *redis.Client) *AuthService {
	return &AuthService{userRepo: userRepo, jwtUtil: jwtUtil, redis: rdb}
}

func (s *AuthService) Register(ctx context.Context, user *models.User) (string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", errors.New("user already exists")
	}

	if err := user.HashPassword(); err != nil {
		return "", err
	}
	user.Role = "guest"

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.jwtUtil.GenerateToken(user.ID.Hex(), user.Role)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("User not found: %s", email)
		return "", errors.New("invalid credentials")
	}

	if err := user.ComparePassword(password); err != nil {
		return "", errors.New("invalid credentials")
	}

	return s.jwtUtil.GenerateToken(user.ID.Hex(), user.Role)
}

func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_profile:%s", userID.Hex())

	val, err := utils.GetFromCache(ctx, s.redis, cacheKey)
	if err == nil {
		var cached models.User
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(user)
	if err := utils.SetToCache(ctx, s.redis, cacheKey, string(data), 5*time.Minute); err != nil {
		log.Printf("Failed to cache user profile: %v", err)
	}

	return user, nil
}

func (s *AuthService) UpdateDeviceToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	if err := s.userRepo.UpdateFields(ctx, userID, bson.M{"device_token": token}); err != nil {
		return err
	}
	return utils.DeleteFromCache(ctx, s.redis, fmt.Sprintf("user_profile:%s", userID.Hex()))
}
