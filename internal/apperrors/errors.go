package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a resolution failure. Callers switch on Kind, never on messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindMetadataNotFound
	KindMalformedMetadata
	KindNoSearchResults
	KindNoMatchingMedia
	KindStreamListUnavailable
	KindNoPlayableVariant
	KindInvalidRequest
)

// String returns the stable name of the kind, used as the gRPC ErrorInfo reason.
func (k Kind) String() string {
	switch k {
	case KindMetadataNotFound:
		return "MetadataNotFound"
	case KindMalformedMetadata:
		return "MalformedMetadata"
	case KindNoSearchResults:
		return "NoSearchResults"
	case KindNoMatchingMedia:
		return "NoMatchingMedia"
	case KindStreamListUnavailable:
		return "StreamListUnavailable"
	case KindNoPlayableVariant:
		return "NoPlayableVariant"
	case KindInvalidRequest:
		return "InvalidRequest"
	default:
		return "Unknown"
	}
}

// Message returns the human-readable text shown to end users for the kind.
func Message(k Kind) string {
	switch k {
	case KindMetadataNotFound:
		return "This title could not be found in the metadata catalog."
	case KindMalformedMetadata:
		return "The metadata catalog returned incomplete information for this title."
	case KindNoSearchResults:
		return "The streaming catalog has no results for this title."
	case KindNoMatchingMedia:
		return "No streaming catalog entry matches this title."
	case KindStreamListUnavailable:
		return "The list of streams for this title is currently unavailable."
	case KindNoPlayableVariant:
		return "No playable stream is available for this title."
	case KindInvalidRequest:
		return "The request is missing required information."
	default:
		return "An unexpected error occurred while resolving the stream."
	}
}

// Error is a classified resolution failure.
type Error struct {
	Kind Kind
	// Op names the stage or provider call that failed, for logs.
	Op  string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is(). Two errors match when their kinds match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMetadataNotFound      = &Error{Kind: KindMetadataNotFound}
	ErrMalformedMetadata     = &Error{Kind: KindMalformedMetadata}
	ErrNoSearchResults       = &Error{Kind: KindNoSearchResults}
	ErrNoMatchingMedia       = &Error{Kind: KindNoMatchingMedia}
	ErrStreamListUnavailable = &Error{Kind: KindStreamListUnavailable}
	ErrNoPlayableVariant     = &Error{Kind: KindNoPlayableVariant}
	ErrInvalidRequest        = &Error{Kind: KindInvalidRequest}
)

// New creates an Error of the given kind.
func New(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// NewInvalidRequestError reports a caller error detected before any I/O.
func NewInvalidRequestError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Op: "validate", Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnknown, false
}
