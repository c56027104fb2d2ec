package jsontools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/damian-dev1/json-tools-and-utilities/sink"
)

// Standard error values shared with the domain model so that errors.Is works across packages
var (
	// ErrParseFailure indicates the input is not strict JSON; *ParseError wraps it
	ErrParseFailure = model.ErrParseFailure

	// ErrRepairExhausted indicates that every repair step and the fallback failed
	ErrRepairExhausted = model.ErrRepairExhausted

	// ErrEmptyRecordSet indicates that record inference produced no rows
	ErrEmptyRecordSet = model.ErrEmptyRecordSet

	// ErrSchemaCollision indicates the target table exists and the collision policy is CollisionError
	ErrSchemaCollision = model.ErrSchemaCollision

	// ErrDuplicateColumnName indicates two columns that sanitize to the same identifier
	ErrDuplicateColumnName = model.ErrDuplicateColumnName

	// ErrUnsupportedFormat indicates an unknown output format or compression
	ErrUnsupportedFormat = model.ErrUnsupportedFormat

	// ErrPathNotFound indicates that a path does not resolve inside a document
	ErrPathNotFound = model.ErrPathNotFound

	// ErrInvalidPath indicates a path expression that cannot be parsed
	ErrInvalidPath = model.ErrInvalidPath

	// ErrUnsupportedSink indicates an unknown sink kind
	ErrUnsupportedSink = sink.ErrUnsupportedKind

	// ErrNoInput indicates that a builder was built without any input
	ErrNoInput = errors.New("jsontools: no input")

	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("jsontools: file not found")

	// ErrDuplicateTableName indicates that two inputs map to the same table name
	ErrDuplicateTableName = errors.New("jsontools: duplicate table name")

	// ErrInvalidQuery indicates a select expression that does not compile
	ErrInvalidQuery = errors.New("jsontools: invalid select expression")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("jsontools: %s failed", ec.Operation)}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	msg := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", msg, baseErr)
	}
	return errors.New(msg)
}
