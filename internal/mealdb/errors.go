package mealdb

import "fmt"

// NetworkError reports a failed round trip to the MealDB API: transport
// errors, timeouts and non-200 responses.
type NetworkError struct {
	StatusCode int // zero when no response was received
	Err        error
}

// Error returns the error message.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("mealdb returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("mealdb request failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a response body that is not the expected
// search envelope.
type MalformedResponseError struct {
	Err error
}

// Error returns the error message.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse mealdb response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
