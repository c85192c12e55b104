package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewType string

const (
	GuestToHost ReviewType = "guest-to-host"
	HostToGuest ReviewType = "host-to-guest"
)

// EditWindow — срок, в течение которого автор может править отзыв.
const EditWindow = 30 * 24 * time.Hour

type ReviewRatings struct {
	Overall       int `bson:"overall" json:"overall" validate:"required,min=1,max=5"`
	Cleanliness   int `bson:"cleanliness,omitempty" json:"cleanliness,omitempty" validate:"omitempty,min=1,max=5"`
	Communication int `bson:"communication,omitempty" json:"communication,omitempty" validate:"omitempty,min=1,max=5"`
	Cultural      int `bson:"cultural,omitempty" json:"cultural,omitempty" validate:"omitempty,min=1,max=5"`
	Cooking       int `bson:"cooking,omitempty" json:"cooking,omitempty" validate:"omitempty,min=1,max=5"`
	Hospitality   int `bson:"hospitality,omitempty" json:"hospitality,omitempty" validate:"omitempty,min=1,max=5"`
	Respect       int `bson:"respect,omitempty" json:"respect,omitempty" validate:"omitempty,min=1,max=5"`
}

type Helpful struct {
	Count int                  `bson:"count" json:"count"`
	Users []primitive.ObjectID `bson:"users,omitempty" json:"users,omitempty"`
}

type ReviewResponse struct {
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	Author  primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
}

var ReviewHighlights = []string{
	"excellent-cooking", "cultural-insights", "warm-hospitality",
	"clean-accommodation", "great-communication", "authentic-experience",
	"family-friendly", "language-practice", "local-knowledge",
	"respectful-guest", "easy-communication", "followed-house-rules",
	"left-clean", "cultural-curiosity",
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Booking    primitive.ObjectID `bson:"booking" json:"booking"`
	Reviewer   primitive.ObjectID `bson:"reviewer" json:"reviewer"`
	Reviewee   primitive.ObjectID `bson:"reviewee" json:"reviewee"`
	Type       ReviewType         `bson:"type" json:"type" validate:"required,oneof=guest-to-host host-to-guest"`
	Ratings    ReviewRatings      `bson:"ratings" json:"ratings"`
	Comment    string             `bson:"comment" json:"comment" validate:"required,min=10,max=1000"`
	Highlights []string           `bson:"highlights,omitempty" json:"highlights,omitempty"`
	Photos     []string           `bson:"photos,omitempty" json:"photos,omitempty"`
	Helpful    Helpful            `bson:"helpful" json:"helpful"`
	Response   *ReviewResponse    `bson:"response,omitempty" json:"response,omitempty"`
	Flagged    bool               `bson:"flagged" json:"flagged"`
	FlagReason string             `bson:"flag_reason,omitempty" json:"flagReason,omitempty" validate:"omitempty,oneof=inappropriate spam fake offensive other"`
	Verified   bool               `bson:"verified" json:"verified"`
	Language   string             `bson:"language,omitempty" json:"language,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (r *Review) Editable(now time.Time) bool {
	return now.Sub(r.CreatedAt) <= EditWindow
}

func (r *Review) HasResponse() bool {
	return r.Response != nil && r.Response.Comment != ""
}

// MarkedHelpfulBy: участие пользователя в множестве "полезно".
func (r *Review) MarkedHelpfulBy(userID primitive.ObjectID) bool {
	for _, id := range r.Helpful.Users {
		if id == userID {
			return true
		}
	}
	return false
}
