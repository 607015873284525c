package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	xerrors "glam-admin/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Check validates a draft struct and returns field -> message.
func Check(v any) FieldErrors {
	out := FieldErrors{}
	err := engine().Struct(v)
	if err == nil {
		return out
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}
	out["_"] = "Form data is invalid."
	return out
}

// Err turns collected field errors into a ValidationError, or nil when empty.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return xerrors.ValidationError(f)
}

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "This field is required."
	case "gte":
		return "Must be at least " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	case "url":
		return "Must be a valid URL."
	case "max":
		return "Must be at most " + param + " characters."
	default:
		return "Invalid value."
	}
}
