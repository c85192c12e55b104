package models

import "math"

// AggregateRatings пересчитывает средние по всем guest-to-host отзывам хоста
// целиком, без инкрементальных обновлений. Пустые категории считаются нулём,
// как и раньше. При нуле отзывов вызывать не нужно — прежние значения
// остаются как есть.
func AggregateRatings(reviews []Review) HostRatings {
	var sum struct {
		overall, cleanliness, communication, cultural, cooking int
	}
	for _, r := range reviews {
		sum.overall += r.Ratings.Overall
		sum.cleanliness += r.Ratings.Cleanliness
		sum.communication += r.Ratings.Communication
		sum.cultural += r.Ratings.Cultural
		sum.cooking += r.Ratings.Cooking
	}

	count := len(reviews)
	return HostRatings{
		Overall:       roundTenth(float64(sum.overall) / float64(count)),
		Cleanliness:   roundTenth(float64(sum.cleanliness) / float64(count)),
		Communication: roundTenth(float64(sum.communication) / float64(count)),
		Cultural:      roundTenth(float64(sum.cultural) / float64(count)),
		Cooking:       roundTenth(float64(sum.cooking) / float64(count)),
		TotalReviews:  count,
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
