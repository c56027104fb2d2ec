package model

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var ltsvLabelPattern = regexp.MustCompile(`[^0-9A-Za-z_.\-]`)

// ToDelimitedText converts a decoded JSON value to CSV, TSV or LTSV text.
// Rows follow InferRecords order and columns are sorted by path. An empty sep
// means DefaultSeparator.
func ToDelimitedText(value any, sep string, format OutputFormat) (string, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	rows, err := FlattenRecords(context.Background(), InferRecords(value), sep)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := WriteDelimited(&b, rows, format); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteDelimited writes rows to w as CSV, TSV or LTSV. CSV and TSV start with a
// header of raw path names. Missing and null cells are written empty, booleans
// as true/false and numbers as their original literal.
func WriteDelimited(w io.Writer, rows []FlatRow, format OutputFormat) error {
	if len(rows) == 0 {
		return ErrEmptyRecordSet
	}
	header := ColumnNames(rows)
	if len(header) == 0 {
		return fmt.Errorf("%w: no columns", ErrEmptyRecordSet)
	}

	switch format {
	case OutputFormatCSV, OutputFormatTSV:
		cw := csv.NewWriter(w)
		if format == OutputFormatTSV {
			cw.Comma = '\t'
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		record := make([]string, len(header))
		for _, row := range rows {
			for i, name := range header {
				record[i] = formatCell(row[name])
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	case OutputFormatLTSV:
		return writeLTSV(w, header, rows)
	default:
		return fmt.Errorf("%w: %s is not a delimited format", ErrUnsupportedFormat, format)
	}
}

// writeLTSV writes one label:value line per row. Null and missing cells are omitted.
func writeLTSV(w io.Writer, header []string, rows []FlatRow) error {
	labels := make([]string, len(header))
	for i, name := range header {
		labels[i] = ltsvLabelPattern.ReplaceAllString(name, "_")
	}

	var line strings.Builder
	for _, row := range rows {
		line.Reset()
		for i, name := range header {
			v, ok := row[name]
			if !ok || v == nil {
				continue
			}
			if line.Len() > 0 {
				line.WriteByte('\t')
			}
			line.WriteString(labels[i])
			line.WriteByte(':')
			line.WriteString(strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(formatCell(v)))
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
