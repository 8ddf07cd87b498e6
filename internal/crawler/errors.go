
package crawler

import (
	"errors"
	"fmt"
)

var (
	// ErrSetup means the browser prerequisite is missing. It is fatal and is
	// only returned before any site is fetched.
	ErrSetup = errors.New("browser setup failed")

	ErrTimeout    = errors.New("timed out waiting for page readiness")
	ErrSession    = errors.New("browser session failed")
	ErrUnexpected = errors.New("unexpected fetch failure")
)

// Kind is the closed set of per-fetch failure categories.
type Kind int

const (
	KindUnexpected Kind = iota
	KindTimeout
	KindSession
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindSession:
		return "session"
	default:
		return "unexpected"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTimeout:
		return ErrTimeout
	case KindSession:
		return ErrSession
	default:
		return ErrUnexpected
	}
}

// FetchError reports a failed fetch of URL.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is match the sentinel of the error's kind.
func (e *FetchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func fetchErr(kind Kind, url string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: url, Err: err}
}

// KindOf returns the kind of a fetch error, or KindUnexpected for any other error.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}
