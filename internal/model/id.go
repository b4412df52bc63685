package model

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "carlog/internal/errors"
)

// ParseID parses a path or payload identifier into a UUID. Malformed input
// maps to ErrInvalidVehicleID rather than a catch-all parse failure.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidVehicleID, raw)
	}
	return id, nil
}
