// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateID is returned when a caller supplied id is already taken.
var ErrDuplicateID = errors.New("product id already exists")

// ErrNullValue is returned when a write would leave a product column unset.
var ErrNullValue = errors.New("product field must not be null")
