package request

type ShowTimeRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// MovieRequest creates a movie, optionally with its first show times.
type MovieRequest struct {
	Title             string            `json:"title" validate:"required,max=255"`
	Genre             string            `json:"genre" validate:"required,max=100"`
	Description       string            `json:"description"`
	Rating            *float64          `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Price             float64           `json:"price" validate:"gte=0"`
	DurationInMinutes int               `json:"duration_in_minutes" validate:"gte=0,lte=999"`
	ShowTimes         []ShowTimeRequest `json:"showtimes,omitempty" validate:"omitempty,dive"`
}

// MovieUpdateRequest changes only the fields that are set.
type MovieUpdateRequest struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Genre             *string  `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Description       *string  `json:"description,omitempty"`
	Rating            *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationInMinutes *int     `json:"duration_in_minutes,omitempty" validate:"omitempty,gte=0,lte=999"`
}

type MovieListRequest struct {
	PaginatedRequest
	Genre  string
	Search string
}
