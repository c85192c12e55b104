package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"time"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"
	"culturalstay/internal/utils"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HostSearchQuery struct {
	Location   string
	PriceMin   string
	PriceMax   string
	Experience string
	Rating     string
	Verified   string
	Superhost  string
	Page       int64
	Limit      int64
}

type HostSearchResult struct {
	Hosts      []models.Host     `json:"hosts"`
	Pagination models.Pagination `json:"pagination"`
}

type HostService struct {
	repo          repository.HostRepository
	userRepo      repository.UserRepository
	redis         *redis.Client
	minioClient   *minio.Client
	minioBucket   string
	minioEndpoint string
}

func NewHostService(repo repository.HostRepository, userRepo repository.UserRepository, rdb *redis.Client, minioClient *minio.Client, bucket, endpoint string) *HostService {
	return &HostService{
		repo:          repo,
		userRepo:      userRepo,
		redis:         rdb,
		minioClient:   minioClient,
		minioBucket:   bucket,
		minioEndpoint: endpoint,
	}
}

func (s *HostService) CreateHost(ctx context.Context, userID primitive.ObjectID, host *models.Host) error {
	if err := utils.ValidateStruct(host); err != nil {
		return err
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing != nil {
		return models.ErrDuplicateHost
	}

	host.User = userID
	host.Status = models.HostPending
	if host.Availability.MinimumStay == 0 {
		host.Availability.MinimumStay = 1
	}
	if host.Availability.MaximumStay == 0 {
		host.Availability.MaximumStay = 30
	}
	if host.Availability.BookingWindow == 0 {
		host.Availability.BookingWindow = 365
	}

	if err := s.repo.Create(ctx, host); err != nil {
		return err
	}

	// пользователь становится хостом
	if err := s.userRepo.UpdateFields(ctx, userID, bson.M{"role": "host"}); err != nil {
		return err
	}
	return utils.DeleteFromCache(ctx, s.redis, fmt.Sprintf("user_profile:%s", userID.Hex()))
}

func (s *HostService) UpdateHost(ctx context.Context, id, callerID primitive.ObjectID, updated *models.Host) (*models.Host, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host.User != callerID {
		return nil, models.ErrNotAuthorized
	}

	updated.ID = host.ID
	updated.User = host.User
	updated.Status = host.Status
	updated.Ratings = host.Ratings
	updated.Superhost = host.Superhost
	updated.CreatedAt = host.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// UpdateStatus — модерация профиля. Одобрить можно только профиль,
// прошедший верификацию.
func (s *HostService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.HostStatus) (*models.Host, error) {
	switch status {
	case models.HostApproved, models.HostRejected, models.HostSuspended:
	default:
		return nil, fmt.Errorf("%w: invalid status", models.ErrValidation)
	}

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == models.HostApproved && !host.IsVerified() {
		return nil, fmt.Errorf("%w: host has not completed verification", models.ErrValidation)
	}

	if err := s.repo.UpdateFields(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	host.Status = status
	s.invalidate(ctx, id)
	return host, nil
}

func (s *HostService) GetHost(ctx context.Context, id primitive.ObjectID) (*models.Host, error) {
	cacheKey := fmt.Sprintf("host:%s", id.Hex())

	val, err := utils.GetFromCache(ctx, s.redis, cacheKey)
	if err == nil {
		var cached models.Host
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(host)
	if err := utils.SetToCache(ctx, s.redis, cacheKey, string(data), utils.RedisCacheDuration); err != nil {
		log.Printf("Failed to cache host: %v", err)
	}
	return host, nil
}

// Search ищет только approved-хостов; результат кэшируется по sha1 фильтра.
func (s *HostService) Search(ctx context.Context, q HostSearchQuery) (*HostSearchResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	filter := buildHostFilter(q)

	queryJSON, _ := json.Marshal(q)
	hash := sha1.Sum(queryJSON)
	cacheKey := fmt.Sprintf("hosts_search:%s", hex.EncodeToString(hash[:]))

	val, err := utils.GetFromCache(ctx, s.redis, cacheKey)
	if err == nil {
		var cached HostSearchResult
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	hosts, total, err := s.repo.Search(ctx, filter, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	result := &HostSearchResult{
		Hosts:      hosts,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}

	data, _ := json.Marshal(result)
	_ = utils.SetToCache(ctx, s.redis, cacheKey, string(data), utils.RedisCacheDuration)

	return result, nil
}

func buildHostFilter(q HostSearchQuery) bson.M {
	filter := bson.M{"status": models.HostApproved}

	if q.Location != "" {
		regex := bson.M{"$regex": q.Location, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"address.city": regex},
			bson.M{"address.country": regex},
			bson.M{"address.state": regex},
		}
	}

	if q.PriceMin != "" || q.PriceMax != "" {
		price := bson.M{}
		if v, err := strconv.ParseFloat(q.PriceMin, 64); err == nil {
			price["$gte"] = v
		}
		if v, err := strconv.ParseFloat(q.PriceMax, 64); err == nil {
			price["$lte"] = v
		}
		if len(price) > 0 {
			filter["pricing.base_price"] = price
		}
	}

	if q.Experience != "" {
		filter["experiences.type"] = q.Experience
	}

	if v, err := strconv.ParseFloat(q.Rating, 64); err == nil {
		filter["ratings.overall"] = bson.M{"$gte": v}
	}

	if q.Verified == "true" {
		filter["verification.identity"] = true
		filter["verification.income"] = true
		filter["verification.background"] = true
	}

	if q.Superhost == "true" {
		filter["superhost"] = true
	}

	return filter
}

// UploadPhotos кладёт файлы в MinIO и дописывает URL-ы в профиль хоста.
func (s *HostService) UploadPhotos(ctx context.Context, id, callerID primitive.ObjectID, files []*multipart.FileHeader) ([]string, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host.User != callerID {
		return nil, models.ErrNotAuthorized
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		objectName := fmt.Sprintf("%s/%d_%s", id.Hex(), time.Now().UnixNano(), fh.Filename)
		contentType := fh.Header.Get("Content-Type")
		_, err = s.minioClient.PutObject(ctx, s.minioBucket, objectName, f, fh.Size,
			minio.PutObjectOptions{ContentType: contentType})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}

		urls = append(urls, fmt.Sprintf("http://%s/%s/%s", s.minioEndpoint, s.minioBucket, objectName))
	}

	if err := s.repo.PushPhotos(ctx, id, urls); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return append(host.Accommodation.Photos, urls...), nil
}

func (s *HostService) AddExperience(ctx context.Context, id, callerID primitive.ObjectID, exp models.Experience) ([]models.Experience, error) {
	if err := utils.ValidateStruct(&exp); err != nil {
		return nil, err
	}

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host.User != callerID {
		return nil, models.ErrNotAuthorized
	}

	if err := s.repo.PushExperience(ctx, id, exp); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return append(host.Experiences, exp), nil
}

// UpdateAvailability сливает присланные поля с текущими (merge-семантика).
func (s *HostService) UpdateAvailability(ctx context.Context, id, callerID primitive.ObjectID, av models.Availability) (*models.Availability, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host.User != callerID {
		return nil, models.ErrNotAuthorized
	}

	merged := host.Availability
	if av.Calendar != nil {
		merged.Calendar = av.Calendar
	}
	if av.MinimumStay > 0 {
		merged.MinimumStay = av.MinimumStay
	}
	if av.MaximumStay > 0 {
		merged.MaximumStay = av.MaximumStay
	}
	if av.BookingWindow > 0 {
		merged.BookingWindow = av.BookingWindow
	}

	if err := s.repo.UpdateFields(ctx, id, bson.M{"availability": merged}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return &merged, nil
}

func (s *HostService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := utils.DeleteFromCache(ctx, s.redis, fmt.Sprintf("host:%s", id.Hex())); err != nil {
		log.Printf("Failed to invalidate cache: %v", err)
	}
}
