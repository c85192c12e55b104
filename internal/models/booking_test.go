package models

import (
	"testing"
	"time"
)

func TestCanCancel_Window(t *testing.T) {
	checkIn := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
	b := Booking{Status: BookingConfirmed, CheckIn: checkIn}

	// За 8 дней до заезда — можно
	if !b.CanCancel(checkIn.AddDate(0, 0, -8)) {
		t.Error("8 days before check-in cancellation must be allowed")
	}
	// Ровно на границе окна — уже нельзя
	if b.CanCancel(checkIn.Add(-CancellationWindow)) {
		t.Error("exactly at the deadline cancellation must be rejected")
	}
	// За 6 дней — нельзя
	if b.CanCancel(checkIn.AddDate(0, 0, -6)) {
		t.Error("6 days before check-in cancellation must be rejected")
	}
}

func TestCanCancel_Status(t *testing.T) {
	checkIn := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
	now := checkIn.AddDate(0, 0, -30)

	for _, status := range []BookingStatus{BookingPending, BookingCancelled, BookingCompleted, BookingDisputed} {
		b := Booking{Status: status, CheckIn: checkIn}
		if b.CanCancel(now) {
			t.Errorf("status %s must not be cancellable", status)
		}
	}
}

func TestTotalNights(t *testing.T) {
	b := Booking{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	if got := b.TotalNights(); got != 5 {
		t.Errorf("TotalNights = %d, want 5", got)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total, limit, pages int64
	}{
		{0, 10, 0},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, c := range cases {
		if got := NewPagination(1, c.limit, c.total); got.Pages != c.pages {
			t.Errorf("pages for total=%d limit=%d = %d, want %d", c.total, c.limit, got.Pages, c.pages)
		}
	}
}

func TestReviewEditable(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r := Review{CreatedAt: created}

	if !r.Editable(created.AddDate(0, 0, 29)) {
		t.Error("29 days after creation review must still be editable")
	}
	if r.Editable(created.Add(EditWindow).Add(time.Hour)) {
		t.Error("past the edit window review must be locked")
	}
}
