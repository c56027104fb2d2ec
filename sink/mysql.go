package sink

import (
	"context"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	_ "github.com/go-sql-driver/mysql" // Register mysql driver
)

var mysqlDialect = dialect{
	driverName: "mysql",
	quote: func(ident string) string {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	},
	placeholder: questionMark,
	existsQuery: `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`,
	types: map[model.ColumnType]string{
		model.ColumnTypeInteger: "BIGINT",
		model.ColumnTypeReal:    "DOUBLE",
		model.ColumnTypeText:    "LONGTEXT",
	},
}

func init() {
	Register("mysql", func(ctx context.Context, cfg Config) (Writer, error) {
		return openSQL(ctx, mysqlDialect, cfg.DSN)
	})
}
