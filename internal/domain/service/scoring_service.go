package service

import (
	"context"

	"nutrilens/internal/domain/entity"
)

// Score is the external model's verdict on a nutrition facts object.
type Score struct {
	Rating            float64
	PredictedDiseases []string
}

// ScoringService is the external ML rating collaborator.
type ScoringService interface {
	Score(ctx context.Context, info entity.NutritionalInfo) (*Score, error)
}
