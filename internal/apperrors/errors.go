package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a funding account cannot cover a cost
// under the blocking funds policy.
var ErrInsufficientFunds = errors.New("insufficient funds in account")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable indicates a feature whose backing service is not configured
// or not reachable.
var ErrUnavailable = errors.New("service unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
