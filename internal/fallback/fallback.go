// Package fallback answers free-form questions that no intent handler
// covers by delegating them to a language model.
package fallback

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no responder is available
	ErrNotConfigured = errors.New("fallback responder is not configured")
	// ErrInvalidAPIKey is returned when the API key is empty or rejected
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrEmptyAnswer is returned when the model produced no text
	ErrEmptyAnswer = errors.New("empty answer from model")
)

// Request carries everything the model needs to answer in the user's context
type Request struct {
	CountryName string
	Language    string // human readable, e.g. "English"
	Today       string // dd/MM/yyyy
	Context     string // summary of the holiday data for the country
	Message     string
}

// Responder produces a free-text answer for a general question
type Responder interface {
	Answer(ctx context.Context, req Request) (string, error)
}

// Func adapts an ordinary function to the Responder interface
type Func func(ctx context.Context, req Request) (string, error)

// Answer calls f(ctx, req)
func (f Func) Answer(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
