package analysis

import (
	"errors"
	"fmt"
)

// Kind tags the pipeline stage an error came from.
type Kind int

const (
	KindUnknown Kind = iota
	KindFetch
	KindDetection
	KindTranslation
	KindFormat
	KindMalformedRequest
)

var (
	ErrFetch            = errors.New("fetch error")
	ErrDetection        = errors.New("detection error")
	ErrTranslation      = errors.New("translation error")
	ErrFormat           = errors.New("format error")
	ErrMalformedRequest = errors.New("malformed request")
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindDetection:
		return "detection"
	case KindTranslation:
		return "translation"
	case KindFormat:
		return "format"
	case KindMalformedRequest:
		return "malformed_request"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindFetch:
		return ErrFetch
	case KindDetection:
		return ErrDetection
	case KindTranslation:
		return ErrTranslation
	case KindFormat:
		return ErrFormat
	case KindMalformedRequest:
		return ErrMalformedRequest
	default:
		return nil
	}
}

// Error wraps the cause of a failed stage together with its kind.
// errors.Is(err, ErrFetch) and friends match on the kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := "analysis error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind Kind, err error) error {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == kind {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

func NewFetchError(err error) error       { return newError(KindFetch, err) }
func NewDetectionError(err error) error   { return newError(KindDetection, err) }
func NewTranslationError(err error) error { return newError(KindTranslation, err) }
func NewFormatError(err error) error      { return newError(KindFormat, err) }

func NewMalformedRequestError(format string, args ...any) error {
	return &Error{Kind: KindMalformedRequest, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the stage kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
