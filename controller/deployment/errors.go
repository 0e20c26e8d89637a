package deployment

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by this package matches exactly
// one of them under errors.Is.
var (
	ErrConfig           = errors.New("invalid configuration")
	ErrExecutionRole    = errors.New("failed to get execution role")
	ErrModelDescriptor  = errors.New("failed to create model")
	ErrDeployment       = errors.New("deployment failed")
	ErrSmokeTest        = errors.New("endpoint test failed")
	ErrEndpointNotFound = errors.New("endpoint not found")
	ErrList             = errors.New("failed to list endpoints")
	ErrStatus           = errors.New("failed to check endpoint")
	ErrDelete           = errors.New("failed to delete endpoint")
)

type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Wrap tags err with a failure category. A nil err stays nil.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

var exitCodes = []struct {
	kind error
	code int
}{
	{ErrConfig, 2},
	{ErrExecutionRole, 3},
	{ErrModelDescriptor, 4},
	{ErrDeployment, 5},
	{ErrSmokeTest, 6},
	{ErrEndpointNotFound, 7},
	{ErrList, 8},
	{ErrStatus, 9},
	{ErrDelete, 10},
}

// ExitCode maps an error returned by this package to the process exit code.
// Uncategorised errors exit with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.kind) {
			return ec.code
		}
	}
	return 1
}
