package sink

import (
	"context"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver
)

var postgresDialect = dialect{
	driverName:  "pgx",
	quote:       doubleQuote,
	placeholder: dollarPlaceholder,
	existsQuery: `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`,
	types: map[model.ColumnType]string{
		model.ColumnTypeInteger: "BIGINT",
		model.ColumnTypeReal:    "DOUBLE PRECISION",
		model.ColumnTypeText:    "TEXT",
	},
}

func init() {
	Register("postgres", func(ctx context.Context, cfg Config) (Writer, error) {
		return openSQL(ctx, postgresDialect, cfg.DSN)
	})
}
