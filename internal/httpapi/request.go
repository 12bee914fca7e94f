package httpapi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() { validate = validator.New() })
	return validate
}

// CreateTaskRequest is the JSON body for POST /api/v1/tasks.
type CreateTaskRequest struct {
	// Payload stands in for "whatever blocking work the application
	// defines" — the task body itself is out of this module's scope, so
	// Payload drives a simulated repeated-checksum workload instead.
	Payload string `json:"payload" validate:"required,max=4096"`
	// TimeoutMs bounds how long the caller waits for the task's result
	// before getting back a 408.
	TimeoutMs int `json:"timeout_ms" validate:"required,min=1,max=60000"`
}

// Validate runs struct-tag validation and translates the first failure
// into a message suitable for an API response.
func (r CreateTaskRequest) Validate() error {
	if err := getValidator().Struct(&r); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("%s", validationMessage(validationErrors[0]))
		}
		return err
	}
	return nil
}

func validationMessage(fieldError validator.FieldError) string {
	field := strings.ToLower(fieldError.Field())
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// TaskResponse is returned on a successful POST /api/v1/tasks.
type TaskResponse struct {
	Checksum string `json:"checksum"`
}

// StatsResponse is returned by GET /api/v1/stats.
type StatsResponse struct {
	Backend        string `json:"backend"`
	SpawnedWorkers int    `json:"spawned_workers"`
	QueueLen       int    `json:"queue_len"`
}
