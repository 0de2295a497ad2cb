package request

type BookingRequest struct {
	ShowTimeID string   `json:"showtime_id" validate:"required,uuid"`
	Seats      []string `json:"seats" validate:"required,min=1,max=10,dive,required"`
}
