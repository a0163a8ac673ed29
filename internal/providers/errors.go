package providers

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyReply = errors.New("empty reply")

// ProviderError is what every adapter returns when a call fails: transport
// or auth problems, a non-2xx status, or an envelope without text.
type ProviderError struct {
	Provider SourceName
	Err      error
}

func (e *ProviderError) Error() string {
	return strings.ToLower(string(e.Provider)) + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

func fail(name SourceName, err error) error {
	return &ProviderError{Provider: name, Err: err}
}

// StatusError is a non-2xx answer from a provider API.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %s", e.Status)
	}
	return fmt.Sprintf("http %s: %s", e.Status, e.Body)
}
