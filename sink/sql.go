package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
)

// dialect holds the SQL differences between the database/sql backends.
type dialect struct {
	// driverName is the name passed to sql.Open
	driverName string
	// quote quotes an identifier
	quote func(string) string
	// placeholder renders the n-th (1-based) bind parameter
	placeholder func(n int) string
	// existsQuery counts tables with the name given as the only parameter
	existsQuery string
	// types maps column types to DDL types
	types map[model.ColumnType]string
}

func doubleQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func questionMark(int) string {
	return "?"
}

func (d dialect) columnType(ct model.ColumnType) string {
	if t, ok := d.types[ct]; ok {
		return t
	}
	return d.types[model.ColumnTypeText]
}

// buildCreateSQL renders CREATE TABLE for the sanitized identifiers.
func (d dialect) buildCreateSQL(tableName string, idents []string, columns []model.ColumnInfo) string {
	defs := make([]string, len(idents))
	for i, ident := range idents {
		defs[i] = d.quote(ident) + " " + d.columnType(columns[i].Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(tableName), strings.Join(defs, ", "))
}

// buildInsertSQL renders an INSERT with an explicit column list.
func (d dialect) buildInsertSQL(tableName string, idents []string) string {
	cols := make([]string, len(idents))
	placeholders := make([]string, len(idents))
	for i, ident := range idents {
		cols[i] = d.quote(ident)
		placeholders[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(tableName), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}

func (d dialect) buildDropSQL(tableName string) string {
	return "DROP TABLE " + d.quote(tableName)
}

// sqlWriter is the Writer for every database/sql backend.
type sqlWriter struct {
	db      *sql.DB
	dialect dialect
}

func openSQL(ctx context.Context, d dialect, dsn string) (Writer, error) {
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect %s: %w", d.driverName, err)
	}
	return &sqlWriter{db: db, dialect: d}, nil
}

// WriteTable implements Writer. All statements run in one transaction.
func (w *sqlWriter) WriteTable(ctx context.Context, name string, table *model.Table, policy model.CollisionPolicy) (_ int64, err error) {
	idents, err := table.Identifiers()
	if err != nil {
		return 0, err
	}
	tableName := model.SanitizeTableName(name)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err := tx.QueryRowContext(ctx, w.dialect.existsQuery, tableName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to check table existence: %w", err)
	}

	create := count == 0
	if !create {
		switch policy {
		case model.CollisionReplace:
			if _, err := tx.ExecContext(ctx, w.dialect.buildDropSQL(tableName)); err != nil {
				return 0, fmt.Errorf("failed to drop table %s: %w", tableName, err)
			}
			create = true
		case model.CollisionAppend:
		default:
			return 0, fmt.Errorf("%w: %s", model.ErrSchemaCollision, tableName)
		}
	}

	if create {
		if _, err := tx.ExecContext(ctx, w.dialect.buildCreateSQL(tableName, idents, table.Columns())); err != nil {
			return 0, fmt.Errorf("failed to create table %s: %w", tableName, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, w.dialect.buildInsertSQL(tableName, idents))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() {
		_ = stmt.Close() // Ignore close error
	}()

	var written int64
	for _, row := range table.Rows() {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d into %s: %w", written+1, tableName, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return written, nil
}

// Close implements Writer.
func (w *sqlWriter) Close() error {
	return w.db.Close()
}

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func atPlaceholder(n int) string {
	return "@p" + strconv.Itoa(n)
}
