package sink

import (
	"context"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	_ "github.com/microsoft/go-mssqldb" // Register sqlserver driver
)

var sqlserverDialect = dialect{
	driverName: "sqlserver",
	quote: func(ident string) string {
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	},
	placeholder: atPlaceholder,
	existsQuery: `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1`,
	types: map[model.ColumnType]string{
		model.ColumnTypeInteger: "BIGINT",
		model.ColumnTypeReal:    "FLOAT",
		model.ColumnTypeText:    "NVARCHAR(MAX)",
	},
}

func init() {
	Register("sqlserver", func(ctx context.Context, cfg Config) (Writer, error) {
		return openSQL(ctx, sqlserverDialect, cfg.DSN)
	})
}
