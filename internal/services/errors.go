// Package services defines the business logic for the property catalog,
// investments, users, and the yield calculator. This file centralizes the
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Catalog errors.
var (
	// ErrPropertyNotFound indicates that the requested property does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidProperty wraps every property validation failure.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrPropertyExists is returned when a property ID is already taken.
	ErrPropertyExists = errors.New("property already exists")

	// ErrEmptyQuery is returned when a search is issued without a query.
	ErrEmptyQuery = errors.New("search query is empty")
)

// Investment errors.
var (
	// ErrInvalidInvestment wraps every investment validation failure.
	ErrInvalidInvestment = errors.New("invalid investment")

	// ErrUnknownProperty is returned when an investment references a
	// property that does not exist.
	ErrUnknownProperty = errors.New("referenced property does not exist")

	// ErrUnknownUser is returned when an investment references a user that
	// does not exist.
	ErrUnknownUser = errors.New("referenced user does not exist")

	// ErrIdempotencyInFlight is returned when another request holding the
	// same Idempotency-Key has not finished yet.
	ErrIdempotencyInFlight = errors.New("a request with this idempotency key is still in progress")
)

// User errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidUser  = errors.New("invalid user")
	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = errors.New("user already exists")
)
