package entity

const (
	DefaultDescription = "No description available"
	DefaultRating      = 5.0
	MinRating          = 0.0
	MaxRating          = 10.0
)

type Movie struct {
	Base
	Title             string  `db:"title"`
	Genre             string  `db:"genre"`
	Description       string  `db:"description"`
	Rating            float64 `db:"rating"`
	Price             float64 `db:"price"`
	DurationInMinutes int     `db:"duration_in_minutes"`
}

// ClampRating keeps a rating inside the 0-10 scale, falling back to the default.
func ClampRating(rating float64) float64 {
	if rating < MinRating || rating > MaxRating {
		return DefaultRating
	}
	return rating
}
