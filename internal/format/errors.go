package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrNameTooLong indicates a property name does not fit the fixed name field.
	ErrNameTooLong = errors.New("format: property name too long")
	// ErrNameEmpty indicates an empty property name.
	ErrNameEmpty = errors.New("format: empty property name")
	// ErrNameEncoding indicates a name with characters the name field cannot hold.
	ErrNameEncoding = errors.New("format: property name not representable")
	// ErrValueTooLarge indicates a value whose length collides with the reserved size bit.
	ErrValueTooLarge = errors.New("format: value too large")
)
