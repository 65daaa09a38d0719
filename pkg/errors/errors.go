package errors

import (
	"errors"
	"fmt"
)

type ResourceNotFoundError struct {
	error
}

func NewPoolNotFoundError(name string) *ResourceNotFoundError {
	return &ResourceNotFoundError{fmt.Errorf("pool %q not found", name)}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type ResourceExistsError struct {
	error
}

func NewPoolExistsError(name string) *ResourceExistsError {
	return &ResourceExistsError{fmt.Errorf("pool %q already declared", name)}
}

func IsResourceExistsError(err error) bool {
	var e *ResourceExistsError
	return errors.As(err, &e)
}

type InvalidConfigurationError struct {
	error
}

func NewInvalidConfigurationError(format string, args ...any) *InvalidConfigurationError {
	return &InvalidConfigurationError{fmt.Errorf(format, args...)}
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}

func NewRunNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{fmt.Errorf("bench run %q not found", id)}
}
