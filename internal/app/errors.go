package app

import (
	"errors"
	"fmt"
)

// Fallback texts shown when the server gives no reason
const (
	DefaultAuthReason       = "Invalid credentials. Use admin@demo.com / password123."
	DefaultGenerationReason = "Unknown error. Check console."

	authNetworkAlert       = "An error occurred during login. Check console."
	generationNetworkAlert = "An error occurred during task generation. Check console."
	unauthenticatedAlert   = "You must be logged in to create a task."
)

// ErrUnauthenticated is returned when an action needs a session and none exists
var ErrUnauthenticated = errors.New("not logged in")

// ValidationError is a missing required field, detected before any request
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// AuthError is a login the server rejected, or one that never reached it
type AuthError struct {
	Reason  string // server detail or DefaultAuthReason
	Network bool   // request failed before a usable response arrived
	Err     error
}

func (e *AuthError) Error() string {
	if e.Network {
		return fmt.Sprintf("login request failed: %v", e.Err)
	}
	return "login rejected: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// GenerationError is a generation the server rejected, or one that never reached it
type GenerationError struct {
	Reason  string // server detail or DefaultGenerationReason
	Network bool
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Network {
		return fmt.Sprintf("generation request failed: %v", e.Err)
	}
	return "generation rejected: " + e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AlertText returns the text shown to the user for err
func AlertText(err error) string {
	var (
		validation *ValidationError
		auth       *AuthError
		generation *GenerationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return validation.Message
	case errors.Is(err, ErrUnauthenticated):
		return unauthenticatedAlert
	case errors.As(err, &auth):
		if auth.Network {
			return authNetworkAlert
		}
		return "Login Failed: " + auth.Reason
	case errors.As(err, &generation):
		if generation.Network {
			return generationNetworkAlert
		}
		return "Generation Failed: " + generation.Reason
	default:
		return err.Error()
	}
}
