package jsontools

import (
	"encoding/json"
	"testing"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "orders.json", want: "orders"},
		{path: "/var/data/orders.json.gz", want: "orders"},
		{path: "daily sales.json.zst", want: "daily_sales"},
		{path: "export-2024.json.bz2", want: "export_2024"},
		{path: "noext", want: "noext"},
		{path: ".json", want: "data"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TableNameFromPath(tt.path))
		})
	}
}

func TestNamedTable(t *testing.T) {
	t.Parallel()

	table, err := model.BuildTable([]FlatRow{{"id": json.Number("1")}})
	require.NoError(t, err)

	nt := newNamedTable("my orders", table)
	assert.Equal(t, "my_orders", nt.getName())
	assert.Same(t, table, nt.getTable())
}
