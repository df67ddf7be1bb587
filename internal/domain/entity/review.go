package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's comment on an approved product.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Comment   string
	Likes     int64
	Dislikes  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewReaction is a like or dislike.
type ReviewReaction string

const (
	ReactionLike    ReviewReaction = "like"
	ReactionDislike ReviewReaction = "dislike"
)
