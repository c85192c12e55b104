package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HostStatus string

const (
	HostPending   HostStatus = "pending"
	HostApproved  HostStatus = "approved"
	HostRejected  HostStatus = "rejected"
	HostSuspended HostStatus = "suspended"
)

type ExperienceType string

const (
	ExpCooking          ExperienceType = "cooking"
	ExpHomestay         ExperienceType = "homestay"
	ExpCulturalTour     ExperienceType = "cultural-tour"
	ExpLanguageExchange ExperienceType = "language-exchange"
	ExpCraftWorkshop    ExperienceType = "craft-workshop"
)

type Coordinates struct {
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

type Address struct {
	Street      string       `bson:"street" json:"street" validate:"required"`
	City        string       `bson:"city" json:"city" validate:"required"`
	State       string       `bson:"state" json:"state" validate:"required"`
	Country     string       `bson:"country" json:"country" validate:"required"`
	PostalCode  string       `bson:"postal_code" json:"postalCode" validate:"required"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type IncomeVerification struct {
	Verified         bool       `bson:"verified" json:"verified"`
	Documents        []string   `bson:"documents,omitempty" json:"documents,omitempty"`
	VerificationDate *time.Time `bson:"verification_date,omitempty" json:"verificationDate,omitempty"`
	IncomeRange      string     `bson:"income_range" json:"incomeRange" validate:"required,oneof=lower-middle middle upper-middle"`
}

type Accommodation struct {
	Type      string   `bson:"type" json:"type" validate:"required,oneof=apartment house villa traditional"`
	Bedrooms  int      `bson:"bedrooms" json:"bedrooms" validate:"required,min=1"`
	Bathrooms int      `bson:"bathrooms" json:"bathrooms" validate:"required,min=1"`
	Amenities []string `bson:"amenities,omitempty" json:"amenities,omitempty" validate:"dive,oneof=wifi kitchen laundry parking garden balcony air-conditioning heating"`
	Photos    []string `bson:"photos,omitempty" json:"photos,omitempty"`
}

type Experience struct {
	Type        ExperienceType `bson:"type" json:"type" validate:"required,oneof=cooking homestay cultural-tour language-exchange craft-workshop"`
	Title       string         `bson:"title" json:"title" validate:"required"`
	Description string         `bson:"description" json:"description" validate:"required"`
	Duration    string         `bson:"duration" json:"duration" validate:"required"`
	Price       float64        `bson:"price" json:"price" validate:"required,gt=0"`
	MaxGuests   int            `bson:"max_guests" json:"maxGuests" validate:"required,min=1"`
	Includes    []string       `bson:"includes,omitempty" json:"includes,omitempty"`
}

type CulinarySpecialty struct {
	Name        string `bson:"name" json:"name" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty  string `bson:"difficulty,omitempty" json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type CulturalBackground struct {
	Ethnicity  string   `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	Traditions []string `bson:"traditions,omitempty" json:"traditions,omitempty"`
	Festivals  []string `bson:"festivals,omitempty" json:"festivals,omitempty"`
	History    string   `bson:"history,omitempty" json:"history,omitempty"`
}

type HostingExperience struct {
	YearsHosting     int      `bson:"years_hosting" json:"yearsHosting"`
	GuestsHosted     int      `bson:"guests_hosted" json:"guestsHosted"`
	SpecialInterests []string `bson:"special_interests,omitempty" json:"specialInterests,omitempty"`
}

// HostRatings хранит агрегаты по guest-to-host отзывам, пересчитывается целиком.
type HostRatings struct {
	Overall       float64 `bson:"overall" json:"overall"`
	Cleanliness   float64 `bson:"cleanliness" json:"cleanliness"`
	Communication float64 `bson:"communication" json:"communication"`
	Cultural      float64 `bson:"cultural" json:"cultural"`
	Cooking       float64 `bson:"cooking" json:"cooking"`
	TotalReviews  int     `bson:"total_reviews" json:"totalReviews"`
}

type SeasonalRate struct {
	Season          string    `bson:"season" json:"season"`
	StartDate       time.Time `bson:"start_date" json:"startDate"`
	EndDate         time.Time `bson:"end_date" json:"endDate"`
	PriceMultiplier float64   `bson:"price_multiplier" json:"priceMultiplier"`
}

type HostPricing struct {
	BasePrice       float64        `bson:"base_price" json:"basePrice" validate:"required,gt=0"`
	WeeklyDiscount  float64        `bson:"weekly_discount" json:"weeklyDiscount"`
	MonthlyDiscount float64        `bson:"monthly_discount" json:"monthlyDiscount"`
	SeasonalRates   []SeasonalRate `bson:"seasonal_rates,omitempty" json:"seasonalRates,omitempty"`
}

type CalendarDay struct {
	Date      time.Time `bson:"date" json:"date"`
	Available bool      `bson:"available" json:"available"`
	Price     float64   `bson:"price,omitempty" json:"price,omitempty"`
}

type Availability struct {
	Calendar      []CalendarDay `bson:"calendar,omitempty" json:"calendar,omitempty"`
	MinimumStay   int           `bson:"minimum_stay" json:"minimumStay"`
	MaximumStay   int           `bson:"maximum_stay" json:"maximumStay"`
	BookingWindow int           `bson:"booking_window" json:"bookingWindow"`
}

type Verification struct {
	Identity         bool       `bson:"identity" json:"identity"`
	Income           bool       `bson:"income" json:"income"`
	Background       bool       `bson:"background" json:"background"`
	Phone            bool       `bson:"phone" json:"phone"`
	Email            bool       `bson:"email" json:"email"`
	VerificationDate *time.Time `bson:"verification_date,omitempty" json:"verificationDate,omitempty"`
}

type Host struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User                primitive.ObjectID  `bson:"user" json:"user"`
	FamilySize          int                 `bson:"family_size" json:"familySize" validate:"required,min=1,max=10"`
	Address             Address             `bson:"address" json:"address"`
	IncomeVerification  IncomeVerification  `bson:"income_verification" json:"incomeVerification"`
	Accommodation       Accommodation       `bson:"accommodation" json:"accommodation"`
	Experiences         []Experience        `bson:"experiences,omitempty" json:"experiences,omitempty"`
	CulinarySpecialties []CulinarySpecialty `bson:"culinary_specialties,omitempty" json:"culinarySpecialties,omitempty"`
	CulturalBackground  CulturalBackground  `bson:"cultural_background,omitempty" json:"culturalBackground,omitempty"`
	HostingExperience   HostingExperience   `bson:"hosting_experience,omitempty" json:"hostingExperience,omitempty"`
	Ratings             HostRatings         `bson:"ratings" json:"ratings"`
	Pricing             HostPricing         `bson:"pricing" json:"pricing"`
	Availability        Availability        `bson:"availability" json:"availability"`
	Verification        Verification        `bson:"verification" json:"verification"`
	Status              HostStatus          `bson:"status" json:"status"`
	Superhost           bool                `bson:"superhost" json:"superhost"`
	ResponseRate        float64             `bson:"response_rate" json:"responseRate"`
	ResponseTime        string              `bson:"response_time,omitempty" json:"responseTime,omitempty" validate:"omitempty,oneof=within-hour within-few-hours within-day"`
	CreatedAt           time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updatedAt"`
}

// IsVerified: паспорт + доход + проверка биографии. Телефон и email не обязательны.
func (h *Host) IsVerified() bool {
	return h.Verification.Identity && h.Verification.Income && h.Verification.Background
}

func (h *Host) FullAddress() string {
	a := h.Address
	return a.Street + ", " + a.City + ", " + a.State + ", " + a.Country + " " + a.PostalCode
}
