package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDeviceNotFound      = errors.New("ont not found")
	ErrDeviceAlreadyExists = errors.New("ont already exists")

	ErrInvalidInput       = errors.New("invalid input data")
	ErrInvalidMonthFilter = errors.New("invalid month filter (use MM or YYYY-MM)")

	ErrNoAnalyticsData = errors.New("no analytics data yet")

	ErrCollectorUnavailable = errors.New("access controller unreachable")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
