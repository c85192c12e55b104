package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingDisputed  BookingStatus = "disputed"
)

// CancellationWindow — за сколько до заезда гость ещё может отменить бронь.
const CancellationWindow = 7 * 24 * time.Hour

type GuestCount struct {
	Adults   int `bson:"adults" json:"adults" validate:"required,min=1"`
	Children int `bson:"children" json:"children" validate:"min=0"`
	Infants  int `bson:"infants" json:"infants" validate:"min=0"`
}

type BookingPricing struct {
	BasePrice  float64 `bson:"base_price" json:"basePrice" validate:"required,gt=0"`
	ServiceFee float64 `bson:"service_fee" json:"serviceFee" validate:"min=0"`
	Taxes      float64 `bson:"taxes" json:"taxes"`
	Discount   float64 `bson:"discount" json:"discount"`
	Total      float64 `bson:"total" json:"total" validate:"required,gt=0"`
}

type Payment struct {
	Method        string     `bson:"method" json:"method" validate:"required,oneof=credit-card debit-card paypal bank-transfer"`
	TransactionID string     `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	PaymentDate   *time.Time `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	RefundAmount  float64    `bson:"refund_amount" json:"refundAmount"`
	RefundDate    *time.Time `bson:"refund_date,omitempty" json:"refundDate,omitempty"`
}

type Cancellation struct {
	Cancelled        bool       `bson:"cancelled" json:"cancelled"`
	CancelledBy      string     `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CancellationDate *time.Time `bson:"cancellation_date,omitempty" json:"cancellationDate,omitempty"`
	Reason           string     `bson:"reason,omitempty" json:"reason,omitempty"`
	RefundAmount     float64    `bson:"refund_amount" json:"refundAmount"`
}

type SpecialRequests struct {
	Dietary       []string `bson:"dietary,omitempty" json:"dietary,omitempty"`
	Accessibility []string `bson:"accessibility,omitempty" json:"accessibility,omitempty"`
	Other         string   `bson:"other,omitempty" json:"other,omitempty"`
}

type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

type GuestDetails struct {
	EmergencyContact   EmergencyContact `bson:"emergency_contact,omitempty" json:"emergencyContact,omitempty"`
	TravelPurpose      string           `bson:"travel_purpose,omitempty" json:"travelPurpose,omitempty" validate:"omitempty,oneof=leisure business education cultural-exchange other"`
	PreviousExperience string           `bson:"previous_experience,omitempty" json:"previousExperience,omitempty" validate:"omitempty,oneof=first-time experienced frequent-traveler"`
}

// Message — запись в журнале переписки по брони. Seq монотонно растёт
// в пределах одной брони, назначается атомарно при $push.
type Message struct {
	Seq       int64              `bson:"seq" json:"seq"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Read      bool               `bson:"read" json:"read"`
}

type CheckinInstructions struct {
	Provided     bool   `bson:"provided" json:"provided"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
	KeyLocation  string `bson:"key_location,omitempty" json:"keyLocation,omitempty"`
	ContactInfo  string `bson:"contact_info,omitempty" json:"contactInfo,omitempty"`
}

type BookingReviews struct {
	GuestReviewID *primitive.ObjectID `bson:"guest_review_id,omitempty" json:"guestReviewId,omitempty"`
	HostReviewID  *primitive.ObjectID `bson:"host_review_id,omitempty" json:"hostReviewId,omitempty"`
}

type Booking struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Guest               primitive.ObjectID  `bson:"guest" json:"guest"`
	Host                primitive.ObjectID  `bson:"host" json:"host"`
	Experience          ExperienceType      `bson:"experience" json:"experience"`
	CheckIn             time.Time           `bson:"check_in" json:"checkIn"`
	CheckOut            time.Time           `bson:"check_out" json:"checkOut"`
	Guests              GuestCount          `bson:"guests" json:"guests"`
	Pricing             BookingPricing      `bson:"pricing" json:"pricing"`
	Payment             Payment             `bson:"payment" json:"payment"`
	Status              BookingStatus       `bson:"status" json:"status"`
	Cancellation        Cancellation        `bson:"cancellation" json:"cancellation"`
	SpecialRequests     SpecialRequests     `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	GuestDetails        GuestDetails        `bson:"guest_details,omitempty" json:"guestDetails,omitempty"`
	Communication       []Message           `bson:"communication,omitempty" json:"communication,omitempty"`
	MsgSeq              int64               `bson:"msg_seq" json:"-"`
	CheckinInstructions CheckinInstructions `bson:"checkin_instructions,omitempty" json:"checkinInstructions,omitempty"`
	Reviews             BookingReviews      `bson:"reviews" json:"reviews"`
	CreatedAt           time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updatedAt"`
}

func (b *Booking) TotalNights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func (b *Booking) IsActive(now time.Time) bool {
	return !b.CheckIn.After(now) && !b.CheckOut.Before(now) && b.Status == BookingConfirmed
}

func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.CheckIn.After(now) && b.Status == BookingConfirmed
}

func (b *Booking) IsPast(now time.Time) bool {
	return b.CheckOut.Before(now)
}

func (b *Booking) CancellationDeadline() time.Time {
	return b.CheckIn.Add(-CancellationWindow)
}

// CanCancel: только подтверждённая бронь и строго раньше дедлайна.
func (b *Booking) CanCancel(now time.Time) bool {
	return b.Status == BookingConfirmed && now.Before(b.CancellationDeadline())
}

// IsParty сообщает, относится ли пользователь к брони как гость,
// либо как владелец host-профиля (hostUserID — поле user у Host).
func (b *Booking) IsParty(userID primitive.ObjectID, hostProfileID *primitive.ObjectID) bool {
	if b.Guest == userID {
		return true
	}
	return hostProfileID != nil && b.Host == *hostProfileID
}
