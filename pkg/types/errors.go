package types

import "errors"

// Value decoding errors. All are deterministic properties of the input text.
var (
	ErrMalformedQuantity  = errors.New("malformed quantity")
	ErrMalformedPriority  = errors.New("malformed priority")
	ErrMalformedKind      = errors.New("malformed kind")
	ErrMalformedStatus    = errors.New("malformed status")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInvalidUser        = errors.New("invalid user identifier")
)

// Projection errors: the entry stream disagrees with the items it references.
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrDuplicateItem = errors.New("item already exists")
)
