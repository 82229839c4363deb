package utils_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"movie-i18n/internal/globalize"
	"movie-i18n/internal/services"
	"movie-i18n/internal/utils"
)

func TestStatusFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("movie with ID 1: %w", services.ErrNotFound), want: fiber.StatusNotFound},
		{err: fmt.Errorf("movie with TMDB ID 1: %w", services.ErrConflict), want: fiber.StatusConflict},
		{err: fmt.Errorf("%w: title is required", globalize.ErrValidation), want: fiber.StatusBadRequest},
		{err: &globalize.ConfigError{Model: "movie", Attribute: "tagline", Reason: "not a translated attribute"}, want: fiber.StatusBadRequest},
		{err: fiber.ErrUnprocessableEntity, want: fiber.StatusUnprocessableEntity},
		{err: errors.New("connection refused"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.StatusFromError(tt.err), tt.err.Error())
	}
}

func TestCreatePaginationMeta(t *testing.T) {
	t.Parallel()

	meta := utils.CreatePaginationMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	empty := utils.CreatePaginationMeta(1, 10, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
