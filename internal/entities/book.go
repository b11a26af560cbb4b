package entities

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusOnShelf    Status = "on_shelf"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every reading status in display order.
var Statuses = []Status{StatusOnShelf, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusOnShelf, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Description() string {
	switch s {
	case StatusOnShelf:
		return "On Shelf"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ParseStatus converts a stored or user supplied value into a Status.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return s, nil
}

// DistantPast marks a date that has not been set yet.
var DistantPast = time.Time{}

// Book is a single tracked book. Rating is nil until the reader rates it.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512" json:"title" validate:"required,max=512"`
	Author        string    `gorm:"index;size:256" json:"author" validate:"required,max=256"`
	Synopsis      string    `gorm:"type:text" json:"synopsis"`
	Status        Status    `gorm:"index;size:20;default:'on_shelf'" json:"status" validate:"required,oneof=on_shelf in_progress completed"`
	Rating        *int      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	RecommendedBy string    `gorm:"size:256" json:"recommended_by"`
	DateAdded     time.Time `json:"date_added"`
	DateStarted   time.Time `json:"date_started"`
	DateCompleted time.Time `json:"date_completed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// NewBook returns a book that is on the shelf, added now.
func NewBook(title, author string, now time.Time) Book {
	return Book{
		Title:         title,
		Author:        author,
		Status:        StatusOnShelf,
		DateAdded:     now,
		DateStarted:   DistantPast,
		DateCompleted: DistantPast,
	}
}

// SortOrder selects how book lists are ordered.
type SortOrder string

const (
	SortByStatus SortOrder = "status"
	SortByTitle  SortOrder = "title"
	SortByAuthor SortOrder = "author"
)

var SortOrders = []SortOrder{SortByStatus, SortByTitle, SortByAuthor}

func ParseSortOrder(value string) (SortOrder, error) {
	switch s := SortOrder(value); s {
	case SortByStatus, SortByTitle, SortByAuthor:
		return s, nil
	case "":
		return SortByTitle, nil
	}
	return "", fmt.Errorf("unknown sort order %q", value)
}
