package repository

import (
	"context"
	"time"

	"culturalstay/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
}

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{collection: db.Collection("notifications")}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	err = cursor.All(ctx, &notifications)
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "user_id": userID}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err == nil && res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return err
}
