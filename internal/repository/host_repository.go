package repository

import (
	"context"
	"errors"
	"time"

	"culturalstay/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HostRepository interface {
	Create(ctx context.Context, host *models.Host) error
	Update(ctx context.Context, host *models.Host) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Host, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Host, error)
	Search(ctx context.Context, filter bson.M, page, limit int64) ([]models.Host, int64, error)
	PushPhotos(ctx context.Context, id primitive.ObjectID, urls []string) error
	PushExperience(ctx context.Context, id primitive.ObjectID, exp models.Experience) error
}

type hostRepository struct {
	collection *mongo.Collection
}

func NewHostRepository(db *mongo.Database) HostRepository {
	return &hostRepository{collection: db.Collection("hosts")}
}

func (r *hostRepository) Create(ctx context.Context, host *models.Host) error {
	host.ID = primitive.NewObjectID()
	host.CreatedAt = time.Now()
	host.UpdatedAt = host.CreatedAt
	_, err := r.collection.InsertOne(ctx, host)
	return err
}

func (r *hostRepository) Update(ctx context.Context, host *models.Host) error {
	host.UpdatedAt = time.Now()
	_, err := r.collection.UpdateByID(ctx, host.ID, bson.M{"$set": host})
	return err
}

func (r *hostRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": fields})
	return err
}

func (r *hostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Host, error) {
	var host models.Host
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&host)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	return &host, err
}

func (r *hostRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Host, error) {
	var host models.Host
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&host)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	return &host, err
}

// Search возвращает страницу и общее число под фильтром. Сортировка:
// рейтинг по убыванию, затем свежие профили.
func (r *hostRepository) Search(ctx context.Context, filter bson.M, page, limit int64) ([]models.Host, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "ratings.overall", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var hosts []models.Host
	err = cursor.All(ctx, &hosts)
	return hosts, total, err
}

func (r *hostRepository) PushPhotos(ctx context.Context, id primitive.ObjectID, urls []string) error {
	update := bson.M{
		"$push": bson.M{"accommodation.photos": bson.M{"$each": urls}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateByID(ctx, id, update)
	return err
}

func (r *hostRepository) PushExperience(ctx context.Context, id primitive.ObjectID, exp models.Experience) error {
	update := bson.M{
		"$push": bson.M{"experiences": exp},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateByID(ctx, id, update)
	return err
}
