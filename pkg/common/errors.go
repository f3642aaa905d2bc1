package common

import (
	"errors"
	"fmt"
)

// ErrValidation marks a request or record that violates the data model.
// Callers match it with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidateEntity checks the structural requirements of an entity.
// Type and Label are mandatory; everything else is open schema.
func ValidateEntity(e Entity) error {
	if e.Type == "" {
		return fmt.Errorf("%w: entity type is required", ErrValidation)
	}
	if e.Label == "" {
		return fmt.Errorf("%w: entity label is required", ErrValidation)
	}
	return nil
}

// ValidateRelationship checks the structural requirements of a relationship.
// Both endpoints and the type are mandatory, and confidence must stay in [0,1].
func ValidateRelationship(r Relationship) error {
	if r.FromID == "" || r.ToID == "" {
		return fmt.Errorf("%w: relationship endpoints are required", ErrValidation)
	}
	if r.Type == "" {
		return fmt.Errorf("%w: relationship type is required", ErrValidation)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: relationship confidence %v outside [0,1]", ErrValidation, r.Confidence)
	}
	return nil
}
