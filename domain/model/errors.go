// Package model provides the JSON value model, repair pipeline and table derivation for jsontools
package model

import "errors"

var (
	// ErrParseFailure is wrapped by every *ParseError
	ErrParseFailure = errors.New("jsontools: invalid JSON")

	// ErrRepairExhausted indicates that no repair step produced valid JSON
	ErrRepairExhausted = errors.New("jsontools: repair exhausted")

	// ErrEmptyRecordSet indicates that record inference produced no rows
	ErrEmptyRecordSet = errors.New("jsontools: empty record set")

	// ErrSchemaCollision indicates that the target table exists and no collision policy was chosen
	ErrSchemaCollision = errors.New("jsontools: table already exists")

	// ErrDuplicateColumnName is returned when two columns sanitize to the same identifier
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrUnsupportedFormat indicates an unknown output format or compression
	ErrUnsupportedFormat = errors.New("jsontools: unsupported format")

	// ErrPathNotFound indicates that a path does not resolve inside a value
	ErrPathNotFound = errors.New("jsontools: path not found")

	// ErrInvalidPath indicates a path expression that cannot be parsed
	ErrInvalidPath = errors.New("jsontools: invalid path")
)
