package cli

import (
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// SampleBooks returns a small public domain shelf covering every status.
func SampleBooks(now time.Time) []entities.Book {
	day := 24 * time.Hour
	rating := func(r int) *int { return &r }

	return []entities.Book{
		{
			Title:     "Moby-Dick",
			Author:    "Herman Melville",
			Synopsis:  "A sailor's account of Captain Ahab's hunt for the white whale.",
			Status:    entities.StatusOnShelf,
			DateAdded: now.Add(-40 * day),
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			Synopsis:      "Elizabeth Bennet and Mr. Darcy misjudge each other.",
			Status:        entities.StatusCompleted,
			Rating:        rating(5),
			RecommendedBy: "Book club",
			DateAdded:     now.Add(-90 * day),
			DateStarted:   now.Add(-60 * day),
			DateCompleted: now.Add(-45 * day),
		},
		{
			Title:       "Meditations",
			Author:      "Marcus Aurelius",
			Synopsis:    "Private notes on Stoic practice.",
			Status:      entities.StatusInProgress,
			DateAdded:   now.Add(-20 * day),
			DateStarted: now.Add(-7 * day),
		},
		{
			Title:     "Frankenstein",
			Author:    "Mary Shelley",
			Status:    entities.StatusOnShelf,
			DateAdded: now.Add(-3 * day),
		},
		{
			Title:         "Les Misérables",
			Author:        "Victor Hugo",
			Synopsis:      "Jean Valjean's long road after prison.",
			Status:        entities.StatusCompleted,
			Rating:        rating(4),
			DateAdded:     now.Add(-400 * day),
			DateStarted:   now.Add(-380 * day),
			DateCompleted: now.Add(-300 * day),
		},
	}
}
