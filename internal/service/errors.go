package service

import (
	"errors"
	"fmt"
	"strings"

	"go-inventory-pos/pkg/validator"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmptyPatch   = errors.New("update data must contain at least one field")
)

// ValidationError reports malformed or missing input, detected before any write
type ValidationError struct {
	Message string
	Fields  []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.FailedField, f.Tag))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
}

// NotFoundError covers both absent rows and rows owned by someone else
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// ConflictError reports a unique value already held by another record
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Resource, e.Field, e.Value)
}

type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", e.ProductName, e.Available, e.Requested)
}

// validate runs struct validation and wraps failures as a ValidationError
func validate(req interface{}, message string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: message, Fields: errs}
	}
	return nil
}
