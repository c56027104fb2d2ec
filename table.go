package jsontools

import (
	"path/filepath"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
)

const (
	extJSON = ".json"
)

// namedTable is a built table together with the name it will be stored under.
type namedTable struct {
	// name is the raw table name, sanitized by the sink on write.
	name string
	// table holds the typed rows.
	table *Table
}

// newNamedTable creates a named table.
func newNamedTable(name string, table *Table) *namedTable {
	return &namedTable{
		name:  name,
		table: table,
	}
}

// getName returns the sanitized table name.
func (t *namedTable) getName() string {
	return model.SanitizeTableName(t.name)
}

// getTable returns the typed table.
func (t *namedTable) getTable() *Table {
	return t.table
}

// TableNameFromPath derives a table name from a file path by dropping the
// directory, any compression extension and the file type extension.
func TableNameFromPath(filePath string) string {
	fileName := filepath.Base(filePath)
	if ext := model.DetectCompression(fileName).Extension(); ext != "" {
		fileName = fileName[:len(fileName)-len(ext)]
	}
	return model.SanitizeTableName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
}
