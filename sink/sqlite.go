package sink

import (
	"context"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	_ "modernc.org/sqlite" // Register sqlite driver
)

var sqliteDialect = dialect{
	driverName:  "sqlite",
	quote:       doubleQuote,
	placeholder: questionMark,
	existsQuery: `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`,
	types: map[model.ColumnType]string{
		model.ColumnTypeInteger: "INTEGER",
		model.ColumnTypeReal:    "REAL",
		model.ColumnTypeText:    "TEXT",
	},
}

func init() {
	Register("sqlite", func(ctx context.Context, cfg Config) (Writer, error) {
		return openSQL(ctx, sqliteDialect, cfg.DSN)
	})
}
