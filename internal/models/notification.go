package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	TypeBookingCreated   NotificationType = "booking_created"
	TypeBookingCancelled NotificationType = "booking_cancelled"
	TypeBookingStatus    NotificationType = "booking_status"
	TypeReviewReceived   NotificationType = "review_received"
	TypeMessageReceived  NotificationType = "message_received"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Role      string             `bson:"role" json:"role"` // guest or host
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
