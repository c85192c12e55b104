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

type BookingRepository interface {
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Find(ctx context.Context, filter bson.M) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
	Cancel(ctx context.Context, id primitive.ObjectID, c models.Cancellation) error
	AppendMessage(ctx context.Context, id primitive.ObjectID, sender primitive.ObjectID, text string) (*models.Booking, error)
}

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &bookingRepository{collection: db.Collection("bookings")}
}

// CreateIfAvailable выполняет проверку пересечений и вставку в одной
// транзакции, чтобы два конкурентных запроса не прошли проверку разом.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	client := r.collection.Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		existing, err := r.activeForHost(sc, booking.Host)
		if err != nil {
			return nil, err
		}
		if models.HasConflict(existing, booking.CheckIn, booking.CheckOut) {
			return nil, models.ErrDatesTaken
		}

		booking.ID = primitive.NewObjectID()
		booking.Status = models.BookingPending
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = booking.CreatedAt
		_, err = r.collection.InsertOne(sc, booking)
		return nil, err
	})
	return err
}

// activeForHost — брони хоста, занимающие даты: pending либо confirmed.
func (r *bookingRepository) activeForHost(ctx context.Context, hostID primitive.ObjectID) ([]models.Booking, error) {
	filter := bson.M{
		"host":   hostID,
		"status": bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingPending}},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err = cursor.All(ctx, &bookings)
	return bookings, err
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	return &booking, err
}

func (r *bookingRepository) Find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err = cursor.All(ctx, &bookings)
	return bookings, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err == nil && res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return err
}

func (r *bookingRepository) Cancel(ctx context.Context, id primitive.ObjectID, c models.Cancellation) error {
	update := bson.M{"$set": bson.M{
		"status":       models.BookingCancelled,
		"cancellation": c,
		"updated_at":   time.Now(),
	}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err == nil && res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return err
}

// AppendMessage добавляет запись в журнал переписки одним атомарным
// pipeline-обновлением: инкремент msg_seq и $concatArrays с тем же
// значением seq, порядок сообщений детерминирован.
func (r *bookingRepository) AppendMessage(ctx context.Context, id primitive.ObjectID, sender primitive.ObjectID, text string) (*models.Booking, error) {
	now := time.Now()
	nextSeq := bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$msg_seq", int64(0)}}, 1}}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"msg_seq": nextSeq,
			"communication": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$communication", bson.A{}}},
				bson.A{bson.M{
					"seq":       nextSeq,
					"sender":    sender,
					"message":   text,
					"timestamp": now,
					"read":      false,
				}},
			}},
			"updated_at": now,
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	return &booking, err
}
