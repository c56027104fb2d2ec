package jsontools

import (
	"fmt"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
)

// RepairResult is a successfully repaired document.
type RepairResult struct {
	// Text is the repaired JSON text, or the input itself when it was valid.
	Text string
	// Report lists the applied repair steps. It is empty for valid input.
	Report RepairReport
	// Value is Text decoded into ordered values.
	Value any
}

// Changed reports whether any repair step was applied.
func (r *RepairResult) Changed() bool {
	return len(r.Report) > 0
}

// Repair turns JSON-like text into valid JSON and decodes it.
//
// When nothing helps, the returned error wraps both ErrRepairExhausted and the
// *ParseError of the original text, so callers can show where the input broke:
//
//	res, err := jsontools.Repair(text, jsontools.RepairOptions{})
//	var perr *jsontools.ParseError
//	if errors.As(err, &perr) {
//		fmt.Printf("line %d col %d: %s\n", perr.Line, perr.Column, perr.Message)
//	}
func Repair(text string, opts RepairOptions) (*RepairResult, error) {
	repaired, report, ok := model.RepairWithOptions(text, opts)
	if !ok {
		if perr := model.TryParse(text); perr != nil {
			return nil, fmt.Errorf("%w: %w", ErrRepairExhausted, perr)
		}
		return nil, ErrRepairExhausted
	}

	value, err := model.Decode(repaired)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repaired text: %w", err)
	}
	return &RepairResult{Text: repaired, Report: report, Value: value}, nil
}
