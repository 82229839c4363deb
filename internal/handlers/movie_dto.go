package handlers

import (
	"errors"
	"fmt"

	"movie-i18n/internal/models"
	"movie-i18n/internal/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

type MovieRequest struct {
	TMDBID           int     `json:"tmdb_id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	// Translations sets title and overview per language, e.g. {"fr": {"title": "..."}}
	Translations map[string]services.TranslationInput `json:"translations"`
}

func (r *MovieRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TMDBID, validation.Min(0)),
		validation.Field(&r.Title, validation.Required.When(len(r.Translations) == 0), validation.Length(0, 255)),
		validation.Field(&r.ReleaseDate, validation.Date("2006-01-02")),
		validation.Field(&r.VoteAverage, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&r.VoteCount, validation.Min(0)),
		validation.Field(&r.OriginalLanguage, validation.By(languageCode)),
		validation.Field(&r.Translations, validation.By(func(any) error {
			return languageKeys(r.Translations)
		})),
	)
}

func (r *MovieRequest) toInput() services.MovieInput {
	return services.MovieInput{
		Movie: models.Movie{
			TMDBID:        r.TMDBID,
			OriginalTitle: r.OriginalTitle,
			ReleaseDate:   r.ReleaseDate,
			PosterPath:    r.PosterPath,
			BackdropPath:  r.BackdropPath,
			VoteAverage:   r.VoteAverage,
			VoteCount:     r.VoteCount,
			Popularity:    r.Popularity,
			Adult:         r.Adult,
		},
		OriginalLanguage: r.OriginalLanguage,
		Title:            r.Title,
		Overview:         r.Overview,
		Translations:     r.Translations,
	}
}

// TranslationsRequest maps language codes to attribute values.
type TranslationsRequest map[string]string

func (r TranslationsRequest) Validate() error {
	if len(r) == 0 {
		return errors.New("at least one translation is required")
	}
	return languageKeys(r)
}

func languageCode(value any) error {
	code, _ := value.(string)
	if code == "" {
		return nil
	}
	if _, err := language.Parse(code); err != nil {
		return errors.New("must be a valid language code")
	}
	return nil
}

func languageKeys[V any](values map[string]V) error {
	errs := validation.Errors{}
	for code := range values {
		if _, err := language.Parse(code); err != nil {
			errs[code] = fmt.Errorf("%q is not a valid language code", code)
		}
	}
	return errs.Filter()
}
