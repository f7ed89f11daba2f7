package lookup

import (
	"errors"
	"fmt"
)

// Kind classifies lookup failures
type Kind int

// failure kinds
const (
	// KindUnreachable covers transport and decoding failures
	KindUnreachable Kind = iota
	// KindEmptyInput is returned before any request when term is empty
	KindEmptyInput
	// KindServiceError is an error reported by the dictionary service
	KindServiceError
	// KindNotFound is a successful response without entries
	KindNotFound
	// KindUndetermined is a service error payload without a title
	KindUndetermined
)

// user facing messages
const (
	MessageEmptyInput  = "Please enter a word"
	MessageUnreachable = "Unable to reach dictionary or parse data"
	MessageNotFound    = "No Definitions Found"
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindEmptyInput:
		return "empty_input"
	case KindServiceError:
		return "service_error"
	case KindNotFound:
		return "not_found"
	case KindUndetermined:
		return "undetermined"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrorInfo holds error details reported by the dictionary service
type ErrorInfo struct {
	Title      string
	Message    string
	Resolution string
}

// Failure is the error returned by Service.Lookup
type Failure struct {
	Kind Kind
	Info ErrorInfo
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("lookup %s: %v", f.Kind, f.Err)
	}
	if f.Info.Title != "" {
		return fmt.Sprintf("lookup %s: %s", f.Kind, f.Info.Title)
	}
	return "lookup " + f.Kind.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Message returns text shown to user. Empty message means there is
// no determinable error to display.
func (f *Failure) Message() string {
	switch f.Kind {
	case KindEmptyInput:
		return MessageEmptyInput
	case KindUnreachable:
		return MessageUnreachable
	case KindServiceError, KindNotFound:
		return f.Info.Title
	}
	return ""
}

// AsFailure converts any error to *Failure, unknown errors are treated as unreachable
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: KindUnreachable, Err: err}
}
