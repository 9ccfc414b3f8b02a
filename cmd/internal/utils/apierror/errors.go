package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Message string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
	Status  int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// StoreError reports a persistence failure. Detail carries the driver message
// so callers can diagnose it.
type StoreError struct {
	Message string `json:"error"`
	Detail  string `json:"detail"`
}

func (s *StoreError) Code() int {
	return http.StatusInternalServerError
}

var (
	JSONRequiredError   = NewSimple(http.StatusBadRequest, "JSON body required")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")

	MissingIdentityError = NewSimple(http.StatusBadRequest, "Se requiere NIT o nombre")
	InvalidDataError     = NewSimple(http.StatusBadRequest, "Datos inválidos")
	InvalidStatusError   = NewSimple(http.StatusBadRequest, "Estado inválido")
	NotFoundError        = NewSimple(http.StatusNotFound, "Registro no encontrado")
)

// FromValidationError converts validator failures into a 400 listing every
// offending field. It returns nil if err is not a validation error.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "workflowstatus":
			problems[field] = append(problems[field], "Value must be one of PENDIENTE, PROCESADO, ERROR")
		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Message: InvalidDataError.Message,
		Errors:  problems,
		Status:  http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewStoreError(err error) *StoreError {
	return &StoreError{Message: "DB error", Detail: err.Error()}
}
