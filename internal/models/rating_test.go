package models

import (
	"reflect"
	"testing"
)

func TestAggregateRatings_Average(t *testing.T) {
	reviews := []Review{
		{Ratings: ReviewRatings{Overall: 5, Cleanliness: 4, Communication: 5, Cultural: 5, Cooking: 5}},
		{Ratings: ReviewRatings{Overall: 4, Cleanliness: 4, Communication: 4, Cultural: 5, Cooking: 3}},
		{Ratings: ReviewRatings{Overall: 5, Cleanliness: 5, Communication: 5, Cultural: 4, Cooking: 4}},
	}

	got := AggregateRatings(reviews)
	want := HostRatings{
		Overall:       4.7,
		Cleanliness:   4.3,
		Communication: 4.7,
		Cultural:      4.7,
		Cooking:       4.0,
		TotalReviews:  3,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateRatings = %+v, want %+v", got, want)
	}
}

func TestAggregateRatings_OrderIndependent(t *testing.T) {
	a := []Review{
		{Ratings: ReviewRatings{Overall: 2}},
		{Ratings: ReviewRatings{Overall: 5}},
		{Ratings: ReviewRatings{Overall: 4}},
	}
	b := []Review{a[2], a[0], a[1]}

	if !reflect.DeepEqual(AggregateRatings(a), AggregateRatings(b)) {
		t.Error("aggregation must not depend on review order")
	}
}

func TestAggregateRatings_MissingCategories(t *testing.T) {
	// Незаполненные категории считаются нулём и тянут среднее вниз
	reviews := []Review{
		{Ratings: ReviewRatings{Overall: 4, Cooking: 4}},
		{Ratings: ReviewRatings{Overall: 4}},
	}

	got := AggregateRatings(reviews)
	if got.Overall != 4.0 {
		t.Errorf("overall = %v, want 4.0", got.Overall)
	}
	if got.Cooking != 2.0 {
		t.Errorf("cooking = %v, want 2.0", got.Cooking)
	}
	if got.Cleanliness != 0 {
		t.Errorf("cleanliness = %v, want 0", got.Cleanliness)
	}
	if got.TotalReviews != 2 {
		t.Errorf("totalReviews = %d, want 2", got.TotalReviews)
	}
}
