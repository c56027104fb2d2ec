package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError describes the first syntax error found in a JSON text.
type ParseError struct {
	// Message is the parser's description of the failure.
	Message string
	// Line is 1-based.
	Line int
	// Column is 1-based and counted in runes.
	Column int
	// Offset is the 0-based byte offset of the failure.
	Offset int
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, col %d)", e.Message, e.Line, e.Column)
}

// Unwrap allows errors.Is(err, ErrParseFailure).
func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// TryParse validates text against the strict JSON grammar.
// It returns nil when text is valid, otherwise the location of the first failure.
func TryParse(text string) *ParseError {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(text), &raw)
	if err == nil {
		return nil
	}

	offset := len(text)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = int(syntaxErr.Offset)
		// Offset counts the offending byte as read, except at end of input.
		if !strings.HasPrefix(syntaxErr.Error(), "unexpected end of JSON input") && offset > 0 {
			offset--
		}
	}
	if offset > len(text) {
		offset = len(text)
	}

	line, column := lineColumn(text, offset)
	return &ParseError{
		Message: err.Error(),
		Line:    line,
		Column:  column,
		Offset:  offset,
	}
}

func lineColumn(text string, offset int) (int, int) {
	head := text[:offset]
	line := strings.Count(head, "\n") + 1
	lineStart := strings.LastIndexByte(head, '\n') + 1
	return line, utf8.RuneCountInString(head[lineStart:]) + 1
}
