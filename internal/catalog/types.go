package catalog

import (
	"fmt"
	"strconv"
)

// ResultPage is one page of a movie search
type ResultPage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is a search result. The same value backs the grid card and the
// detail overlay.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

// Year returns the release year, or 0 when the date is missing
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL joins the image base URL and the poster path.
// Movies without a poster return an empty string.
func (m Movie) PosterURL(imageBaseURL string) string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	return imageBaseURL + *m.PosterPath
}

// TMDBURL returns the public TMDB page for the movie
func (m Movie) TMDBURL() string {
	return fmt.Sprintf("https://www.themoviedb.org/movie/%d", m.ID)
}

// errorResponse is the TMDB error body
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// wireResultPage mirrors ResultPage but keeps Results nil-able so a body
// without a results array can be told apart from an empty one.
type wireResultPage struct {
	Page         int      `json:"page"`
	Results      *[]Movie `json:"results"`
	TotalPages   *int     `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}
