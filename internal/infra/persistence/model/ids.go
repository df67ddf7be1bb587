// Package model holds the MongoDB document shapes and their mapping to domain entities.
package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// IDStrings renders ids the way they are stored in documents.
func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}

// ParseIDs is the inverse of IDStrings.
func ParseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid id %q", s)
		}
		out = append(out, id)
	}

	return out, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid %s %q", field, raw)
	}

	return id, nil
}
