package services

import (
	"context"
	"time"

	"movie-i18n/internal/models"
	"movie-i18n/internal/repository"
)

// MovieView is a movie with its translated attributes resolved for the
// request language.
type MovieView struct {
	ID            uint             `json:"id" example:"1"`
	TMDBID        int              `json:"tmdb_id" example:"550"`
	Title         string           `json:"title" example:"Fight Club"`
	Overview      string           `json:"overview" example:"A ticking-time-bomb insomniac..."`
	Language      string           `json:"translation_language" example:"en"`
	Languages     []string         `json:"available_languages" example:"en,fr"`
	OriginalTitle string           `json:"original_title" example:"Fight Club"`
	ReleaseDate   string           `json:"release_date" example:"1999-10-15"`
	PosterPath    string           `json:"poster_path"`
	BackdropPath  string           `json:"backdrop_path"`
	VoteAverage   float64          `json:"vote_average" example:"8.4"`
	VoteCount     int              `json:"vote_count" example:"26280"`
	Popularity    float64          `json:"popularity" example:"61.416"`
	Adult         bool             `json:"adult" example:"false"`
	Original      *models.Language `json:"original_language,omitempty"`
	Genres        []GenreView      `json:"genres"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type GenreView struct {
	ID     uint   `json:"id" example:"18"`
	TMDBID int    `json:"tmdb_id" example:"18"`
	Name   string `json:"name" example:"Drama"`
}

type DashboardView struct {
	*models.DashboardStats
	TopRatedMovies []MovieView `json:"top_rated_movies"`
	MostPopular    []MovieView `json:"most_popular"`
}

// presenter resolves translated attributes through the active language of ctx.
type presenter struct {
	movies repository.MovieRepository
	genres repository.GenreRepository
}

func (p presenter) movie(ctx context.Context, movie *models.Movie) (MovieView, error) {
	instance := p.movies.Bind(movie)

	title, err := instance.GetString(ctx, "title")
	if err != nil {
		return MovieView{}, err
	}
	overview, err := instance.GetString(ctx, "overview")
	if err != nil {
		return MovieView{}, err
	}

	var language string
	if rec, ok := instance.Resolve(ctx); ok {
		language = rec.LanguageCode()
	}

	view := MovieView{
		ID:            movie.ID,
		TMDBID:        movie.TMDBID,
		Title:         title,
		Overview:      overview,
		Language:      language,
		Languages:     instance.Languages(),
		OriginalTitle: movie.OriginalTitle,
		ReleaseDate:   movie.ReleaseDate,
		PosterPath:    movie.PosterPath,
		BackdropPath:  movie.BackdropPath,
		VoteAverage:   movie.VoteAverage,
		VoteCount:     movie.VoteCount,
		Popularity:    movie.Popularity,
		Adult:         movie.Adult,
		Original:      movie.Language,
		Genres:        make([]GenreView, 0, len(movie.Genres)),
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
	if view.Title == "" {
		view.Title = movie.OriginalTitle
	}

	for i := range movie.Genres {
		genre, err := p.genre(ctx, &movie.Genres[i])
		if err != nil {
			return MovieView{}, err
		}
		view.Genres = append(view.Genres, genre)
	}
	return view, nil
}

func (p presenter) moviesOf(ctx context.Context, movies []models.Movie) ([]MovieView, error) {
	views := make([]MovieView, 0, len(movies))
	for i := range movies {
		view, err := p.movie(ctx, &movies[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (p presenter) genre(ctx context.Context, genre *models.Genre) (GenreView, error) {
	name, err := p.genres.Bind(genre).GetString(ctx, "name")
	if err != nil {
		return GenreView{}, err
	}
	return GenreView{ID: genre.ID, TMDBID: genre.TMDBID, Name: name}, nil
}
