// Package utils provides small helpers shared by the configuration packages.
package utils

import "github.com/google/uuid"

// NewLoadID returns a time-ordered identifier used to correlate the log
// entries of a single configuration load. It falls back to a random UUID when
// a v7 UUID cannot be generated.
func NewLoadID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
