package xerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common reusable console errors
var (
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrNoToken       = errors.New("no session token")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrBusy          = errors.New("operation already in progress")
	ErrNoDraft       = errors.New("no open draft")
	ErrNotEditable   = errors.New("resource has no editor")
	ErrNoPending     = errors.New("nothing pending confirmation")
	ErrNoopStatus    = errors.New("order already has this status")
	ErrInvalidStatus = errors.New("unknown order status")
)

// GenericFailure is shown when neither a code nor a message is available.
const GenericFailure = "Something went wrong"

// Kind classifies an error for user-facing handling.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindAPI        Kind = "api"
	KindUpload     Kind = "upload"
	KindNetwork    Kind = "network"
)

// Error is the kinded error returned at every operation boundary.
type Error struct {
	Kind    Kind
	Code    string            // machine-readable code from the API envelope
	Message string            // human message from the API envelope or the validator
	Status  int               // upstream HTTP status, 0 when no response was received
	Fields  map[string]string // per-field validation messages
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func AuthError(status int, code, message string) *Error {
	return &Error{Kind: KindAuth, Status: status, Code: code, Message: message, Err: ErrUnauthorized}
}

func ValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Please fix the highlighted fields", Fields: fields, Err: ErrInvalidInput}
}

func APIError(status int, code, message string) *Error {
	return &Error{Kind: KindAPI, Status: status, Code: code, Message: message}
}

func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func UploadError(message string, err error) *Error {
	return &Error{Kind: KindUpload, Message: message, Err: err}
}

// As extracts a kinded error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

func IsAuth(err error) bool {
	return KindOf(err) == KindAuth || errors.Is(err, ErrNoToken)
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// UserMessage picks the text shown to the operator: code, else message, else fallback.
func UserMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericFailure
	}
	if err == nil {
		return fallback
	}
	if e, ok := As(err); ok {
		switch {
		case e.Code != "":
			return e.Code
		case e.Message != "":
			return e.Message
		}
	}
	return fallback
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
