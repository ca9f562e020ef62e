package utils

import "github.com/google/uuid"

// NewOrderNumber returns the externally visible order token. A UUID keeps
// order volume unguessable, uniqueness is still enforced by the database.
func NewOrderNumber() string {
	return uuid.NewString()
}
