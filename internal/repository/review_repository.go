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

// RatingSnapshot — оценки одного отзыва внутри breakdown-списка статистики.
type RatingSnapshot struct {
	Rating        int `bson:"rating" json:"rating"`
	Cleanliness   int `bson:"cleanliness,omitempty" json:"cleanliness,omitempty"`
	Communication int `bson:"communication,omitempty" json:"communication,omitempty"`
	Cultural      int `bson:"cultural,omitempty" json:"cultural,omitempty"`
	Cooking       int `bson:"cooking,omitempty" json:"cooking,omitempty"`
	Hospitality   int `bson:"hospitality,omitempty" json:"hospitality,omitempty"`
}

type ReviewStats struct {
	AverageRating   float64          `bson:"average_rating" json:"averageRating"`
	TotalReviews    int              `bson:"total_reviews" json:"totalReviews"`
	RatingBreakdown []RatingSnapshot `bson:"rating_breakdown" json:"ratingBreakdown"`
}

type ReviewRepository interface {
	CreateAndLink(ctx context.Context, review *models.Review) error
	UpdateAndReaggregate(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByReviewee(ctx context.Context, revieweeID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error)
	FindByReviewer(ctx context.Context, reviewerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error)
	ExistsFor(ctx context.Context, bookingID, reviewerID primitive.ObjectID, t models.ReviewType) (bool, error)
	Stats(ctx context.Context, revieweeID primitive.ObjectID) (*ReviewStats, error)
	SetResponse(ctx context.Context, id primitive.ObjectID, resp models.ReviewResponse) error
	UpdateHelpful(ctx context.Context, id primitive.ObjectID, helpful models.Helpful) error
}

type reviewRepository struct {
	reviews  *mongo.Collection
	bookings *mongo.Collection
	hosts    *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		reviews:  db.Collection("reviews"),
		bookings: db.Collection("bookings"),
		hosts:    db.Collection("hosts"),
	}
}

// CreateAndLink вставляет отзыв, проставляет ссылку на него в брони и для
// guest-to-host пересчитывает рейтинги хоста — всё одной транзакцией,
// чтобы агрегаты не разъезжались с источником при конкурентных записях.
func (r *reviewRepository) CreateAndLink(ctx context.Context, review *models.Review) error {
	client := r.reviews.Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		review.ID = primitive.NewObjectID()
		review.CreatedAt = time.Now()
		review.UpdatedAt = review.CreatedAt
		if _, err := r.reviews.InsertOne(sc, review); err != nil {
			return nil, err
		}

		slot := "reviews.guest_review_id"
		if review.Type == models.HostToGuest {
			slot = "reviews.host_review_id"
		}
		update := bson.M{"$set": bson.M{slot: review.ID, "updated_at": time.Now()}}
		if _, err := r.bookings.UpdateByID(sc, review.Booking, update); err != nil {
			return nil, err
		}

		if review.Type == models.GuestToHost {
			if err := r.reaggregate(sc, review.Reviewee); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (r *reviewRepository) UpdateAndReaggregate(ctx context.Context, review *models.Review) error {
	client := r.reviews.Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		review.UpdatedAt = time.Now()
		if _, err := r.reviews.UpdateByID(sc, review.ID, bson.M{"$set": review}); err != nil {
			return nil, err
		}
		if review.Type == models.GuestToHost {
			if err := r.reaggregate(sc, review.Reviewee); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// reaggregate читает все guest-to-host отзывы на пользователя-хоста и пишет
// свежие средние в его host-профиль. Ноль отзывов — ничего не трогаем.
func (r *reviewRepository) reaggregate(ctx context.Context, revieweeID primitive.ObjectID) error {
	cursor, err := r.reviews.Find(ctx, bson.M{
		"reviewee": revieweeID,
		"type":     models.GuestToHost,
	})
	if err != nil {
		return err
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	ratings := models.AggregateRatings(reviews)
	update := bson.M{"$set": bson.M{"ratings": ratings, "updated_at": time.Now()}}
	_, err = r.hosts.UpdateOne(ctx, bson.M{"user": revieweeID}, update)
	return err
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	return &review, err
}

func (r *reviewRepository) FindByReviewee(ctx context.Context, revieweeID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	filter := bson.M{"reviewee": revieweeID, "type": models.GuestToHost}
	return r.findPage(ctx, filter, page, limit)
}

func (r *reviewRepository) FindByReviewer(ctx context.Context, reviewerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	return r.findPage(ctx, bson.M{"reviewer": reviewerID}, page, limit)
}

func (r *reviewRepository) findPage(ctx context.Context, filter bson.M, page, limit int64) ([]models.Review, int64, error) {
	total, err := r.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var reviews []models.Review
	err = cursor.All(ctx, &reviews)
	return reviews, total, err
}

func (r *reviewRepository) ExistsFor(ctx context.Context, bookingID, reviewerID primitive.ObjectID, t models.ReviewType) (bool, error) {
	count, err := r.reviews.CountDocuments(ctx, bson.M{
		"booking":  bookingID,
		"reviewer": reviewerID,
		"type":     t,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) Stats(ctx context.Context, revieweeID primitive.ObjectID) (*ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"reviewee": revieweeID,
			"type":     models.GuestToHost,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"average_rating": bson.M{"$avg": "$ratings.overall"},
			"total_reviews":  bson.M{"$sum": 1},
			"rating_breakdown": bson.M{"$push": bson.M{
				"rating":        "$ratings.overall",
				"cleanliness":   "$ratings.cleanliness",
				"communication": "$ratings.communication",
				"cultural":      "$ratings.cultural",
				"cooking":       "$ratings.cooking",
				"hospitality":   "$ratings.hospitality",
			}},
		}}},
	}
	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var results []ReviewStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &ReviewStats{RatingBreakdown: []RatingSnapshot{}}, nil
	}
	return &results[0], nil
}

func (r *reviewRepository) SetResponse(ctx context.Context, id primitive.ObjectID, resp models.ReviewResponse) error {
	update := bson.M{"$set": bson.M{"response": resp, "updated_at": time.Now()}}
	_, err := r.reviews.UpdateByID(ctx, id, update)
	return err
}

func (r *reviewRepository) UpdateHelpful(ctx context.Context, id primitive.ObjectID, helpful models.Helpful) error {
	update := bson.M{"$set": bson.M{"helpful": helpful, "updated_at": time.Now()}}
	_, err := r.reviews.UpdateByID(ctx, id, update)
	return err
}
