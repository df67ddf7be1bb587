package entity

import (
	"time"

	"github.com/google/uuid"
)

// News is an article published by an admin.
type News struct {
	ID               uuid.UUID
	Title            string
	ShortDescription string
	Content          string
	Image            Media
	AuthorID         uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewsDetails carries editable article fields. Nil means not supplied.
type NewsDetails struct {
	Title            *string
	ShortDescription *string
	Content          *string
}

func (d NewsDetails) ApplyTo(n *News) {
	if d.Title != nil {
		n.Title = *d.Title
	}
	if d.ShortDescription != nil {
		n.ShortDescription = *d.ShortDescription
	}
	if d.Content != nil {
		n.Content = *d.Content
	}
}

func (d NewsDetails) IsEmpty() bool {
	return d.Title == nil && d.ShortDescription == nil && d.Content == nil
}
