// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "errors"

// Storage-level sentinels. Use cases translate them into domain errors.
var (
	ErrPrincipalNotFound    = errors.New("principal not found")
	ErrDuplicatePrincipal   = errors.New("username or email already taken")
	ErrProductNotFound      = errors.New("product not found")
	ErrDuplicateProductID   = errors.New("product id already taken")
	ErrNewsNotFound         = errors.New("news not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")

	// ErrTransitionRejected means the guarded write matched no document.
	ErrTransitionRejected = errors.New("current state does not satisfy the transition guard")
)
