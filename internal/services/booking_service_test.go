package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"culturalstay/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBookingRepo struct {
	booking *models.Booking
}

func (s *stubBookingRepo) CreateIfAvailable(ctx context.Context, b *models.Booking) error {
	return nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if s.booking == nil {
		return nil, models.ErrNotFound
	}
	return s.booking, nil
}

func (s *stubBookingRepo) Find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	return nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, id primitive.ObjectID, c models.Cancellation) error {
	return nil
}

func (s *stubBookingRepo) AppendMessage(ctx context.Context, id primitive.ObjectID, sender primitive.ObjectID, text string) (*models.Booking, error) {
	return s.booking, nil
}

func TestCreateBooking_DateGuards(t *testing.T) {
	svc := NewBookingService(nil, nil, nil, nil, nil)
	now := time.Now()

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"выезд раньше заезда", now.Add(24 * time.Hour), now},
		{"выезд совпадает с заездом", now.Add(24 * time.Hour), now.Add(24 * time.Hour)},
		{"заезд в прошлом", now.Add(-time.Hour), now.Add(24 * time.Hour)},
	}
	for _, c := range cases {
		in := &CreateBookingInput{
			Host:       primitive.NewObjectID(),
			Experience: models.ExpCooking,
			CheckIn:    c.checkIn,
			CheckOut:   c.checkOut,
		}
		_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), in)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestFilterByType(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	bookings := []models.Booking{
		{CheckIn: day(20), CheckOut: day(25), Status: models.BookingConfirmed}, // upcoming
		{CheckIn: day(20), CheckOut: day(25), Status: models.BookingPending},   // ещё не подтверждена
		{CheckIn: day(1), CheckOut: day(5), Status: models.BookingCompleted},   // past
		{CheckIn: day(14), CheckOut: day(18), Status: models.BookingConfirmed}, // active
	}

	if got := filterByType(bookings, "upcoming", now); len(got) != 1 || !got[0].CheckIn.Equal(day(20)) {
		t.Errorf("upcoming = %d bookings, want the confirmed future one", len(got))
	}
	if got := filterByType(bookings, "past", now); len(got) != 1 || !got[0].CheckOut.Equal(day(5)) {
		t.Errorf("past = %d bookings, want the finished one", len(got))
	}
	if got := filterByType(bookings, "active", now); len(got) != 1 || !got[0].CheckIn.Equal(day(14)) {
		t.Errorf("active = %d bookings, want the in-progress one", len(got))
	}
	if got := filterByType(bookings, "", now); len(got) != len(bookings) {
		t.Errorf("empty type must keep all bookings, got %d", len(got))
	}
}

func TestBookingCacheKeys_BothParties(t *testing.T) {
	guest := primitive.NewObjectID()
	hostProfile := primitive.NewObjectID()
	hostUser := primitive.NewObjectID()

	b := &models.Booking{Guest: guest, Host: hostProfile}
	keys := bookingCacheKeys(b, hostUser)

	want := map[string]bool{
		"bookings_by_user:" + guest.Hex():    false,
		"bookings_by_user:" + hostUser.Hex(): false,
		"host:" + hostProfile.Hex():          false,
	}
	for _, k := range keys {
		if _, ok := want[k]; !ok {
			t.Errorf("unexpected cache key %q", k)
			continue
		}
		want[k] = true
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("missing cache key %q", k)
		}
	}
}
