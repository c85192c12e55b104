package models

import "time"

// rangeConflict сравнивает существующую бронь [a,b] с кандидатом [c,d].
// Три случая: существующая накрывает заезд, накрывает выезд, либо целиком
// внутри кандидата. Границы закрытые: стык checkout==checkin — конфликт,
// same-day turnover не допускается.
func rangeConflict(a, b, c, d time.Time) bool {
	if !a.After(c) && !b.Before(c) {
		return true
	}
	if !a.After(d) && !b.Before(d) {
		return true
	}
	if !a.Before(c) && !b.After(d) {
		return true
	}
	return false
}

// HasConflict проверяет кандидата против всех существующих броней хоста.
func HasConflict(existing []Booking, checkIn, checkOut time.Time) bool {
	for _, e := range existing {
		if rangeConflict(e.CheckIn, e.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}
