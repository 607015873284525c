package toast

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a transient notification shown after a mutation.
type Toast struct {
	ID       string    `json:"id"`
	Level    Level     `json:"level"`
	Message  string    `json:"message"`
	Resource string    `json:"resource,omitempty"`
	At       time.Time `json:"at"`
}

func New(level Level, resource, message string) Toast {
	return Toast{
		ID:       ulid.Make().String(),
		Level:    level,
		Message:  message,
		Resource: resource,
		At:       time.Now(),
	}
}

func Success(resource, message string) Toast { return New(LevelSuccess, resource, message) }

func Error(resource, message string) Toast { return New(LevelError, resource, message) }
