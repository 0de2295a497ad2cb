package response

import (
	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Genre             string  `json:"genre"`
	Description       string  `json:"description"`
	Rating            float64 `json:"rating"`
	Price             float64 `json:"price"`
	DurationInMinutes int     `json:"duration_in_minutes"`
}

type MovieDetailResponse struct {
	MovieResponse
	ShowTimes []ShowTimeResponse `json:"showtimes"`
}

type ShowTimeResponse struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                m.ID.String(),
		Title:             m.Title,
		Genre:             m.Genre,
		Description:       m.Description,
		Rating:            m.Rating,
		Price:             m.Price,
		DurationInMinutes: m.DurationInMinutes,
	}
}

func ShowTimeToResponse(st *entity.ShowTime) ShowTimeResponse {
	return ShowTimeResponse{
		ID:        st.ID.String(),
		MovieID:   st.MovieID.String(),
		Date:      st.ShowDate.Format(entity.DateLayout),
		StartTime: st.StartTime,
		EndTime:   st.EndTime,
	}
}

func ShowTimesToResponse(showTimes []*entity.ShowTime) []ShowTimeResponse {
	out := make([]ShowTimeResponse, 0, len(showTimes))
	for _, st := range showTimes {
		out = append(out, ShowTimeToResponse(st))
	}
	return out
}
