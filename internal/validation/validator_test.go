package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestValidator_Validate(t *testing.T) {
	v := New()
	now := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	t.Run("accepts a new book", func(t *testing.T) {
		book := entities.NewBook("Dune", "Frank Herbert", now)
		assert.NoError(t, v.Validate(book))
	})

	t.Run("requires title and author", func(t *testing.T) {
		book := entities.NewBook("", "", now)

		err := v.Validate(book)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "is required", verr.Fields["title"])
		assert.Equal(t, "is required", verr.Fields["author"])
		assert.Equal(t, "validation failed: author is required, title is required", err.Error())
	})

	t.Run("rejects rating outside 1-5", func(t *testing.T) {
		book := entities.NewBook("Dune", "Frank Herbert", now)
		rating := 6
		book.Rating = &rating

		err := v.Validate(book)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must not exceed 5", verr.Fields["rating"])
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		book := entities.NewBook("Dune", "Frank Herbert", now)
		book.Status = "lost"

		err := v.Validate(book)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields["status"], "must be one of")
	})
}
