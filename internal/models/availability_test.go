package models

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestHasConflict_Touching(t *testing.T) {
	existing := []Booking{{CheckIn: day(10), CheckOut: day(15), Status: BookingConfirmed}}

	// Стык дат: выезд 15-го, заезд 15-го — конфликт
	if !HasConflict(existing, day(15), day(18)) {
		t.Error("candidate starting on existing checkout day must conflict")
	}
	// И в другую сторону: кандидат выезжает в день заезда существующей
	if !HasConflict(existing, day(7), day(10)) {
		t.Error("candidate ending on existing checkin day must conflict")
	}
	// На следующий день после выезда — свободно
	if HasConflict(existing, day(16), day(18)) {
		t.Error("candidate starting the day after checkout must not conflict")
	}
}

func TestHasConflict_Overlaps(t *testing.T) {
	existing := []Booking{{CheckIn: day(10), CheckOut: day(15)}}

	cases := []struct {
		name     string
		in, out  int
		conflict bool
	}{
		{"частичное пересечение слева", 8, 12, true},
		{"частичное пересечение справа", 13, 20, true},
		{"кандидат внутри существующей", 11, 14, true},
		{"существующая внутри кандидата", 5, 20, true},
		{"полностью до", 1, 5, false},
		{"полностью после", 20, 25, false},
	}
	for _, c := range cases {
		if got := HasConflict(existing, day(c.in), day(c.out)); got != c.conflict {
			t.Errorf("%s: HasConflict(%d..%d) = %v, want %v", c.name, c.in, c.out, got, c.conflict)
		}
	}
}

func TestHasConflict_MultipleBookings(t *testing.T) {
	existing := []Booking{
		{CheckIn: day(1), CheckOut: day(5)},
		{CheckIn: day(20), CheckOut: day(25)},
	}

	if HasConflict(existing, day(7), day(15)) {
		t.Error("gap between bookings must be free")
	}
	if !HasConflict(existing, day(7), day(20)) {
		t.Error("candidate touching the second booking must conflict")
	}
	if HasConflict(nil, day(1), day(5)) {
		t.Error("no existing bookings — no conflict")
	}
}
