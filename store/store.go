// Package store mirrors persisted pipeline artifacts to a database table.  It speaks
// ClickHouse and Postgres through database/sql.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/ClickHouse/clickhouse-go/v2" // clickhouse driver
	_ "github.com/jackc/pgx/stdlib"            // pgx driver

	"github.com/invertedv/esgpanel/frame"
)

// supported dialects
const (
	CH = "clickhouse"
	PG = "postgres"
)

// Dialect wraps a connection plus the SQL flavor it speaks.
type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)
	if dialect != CH && dialect != PG {
		return nil, fmt.Errorf("unsupported dialect %s", dialect)
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

// Open connects to the database named by dsn.
func Open(dialect, dsn string) (*Dialect, error) {
	var driver string
	switch strings.ToLower(dialect) {
	case CH:
		driver = "clickhouse"
	case PG:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported dialect %s", dialect)
	}

	db, e := sql.Open(driver, dsn)
	if e != nil {
		return nil, fmt.Errorf("opening %s connection: %w", dialect, e)
	}

	return NewDialect(dialect, db)
}

func (d *Dialect) Close() error {
	return d.db.Close()
}

func colType(dialect string, dt frame.DataTypes) (string, error) {
	switch dialect {
	case CH:
		switch dt {
		case frame.DTfloat:
			return "Nullable(Float64)", nil
		case frame.DTint:
			return "Int64", nil
		case frame.DTstring:
			return "String", nil
		}
	case PG:
		switch dt {
		case frame.DTfloat:
			return "DOUBLE PRECISION", nil
		case frame.DTint:
			return "BIGINT", nil
		case frame.DTstring:
			return "TEXT", nil
		}
	}

	return "", fmt.Errorf("no %s type for %s", dialect, dt)
}

// fieldName quotes a column name; the panel schema has names with spaces.
func fieldName(nm string) string {
	return `"` + strings.ReplaceAll(nm, `"`, ``) + `"`
}

// createStatement builds the CREATE TABLE for f in the given dialect.
func createStatement(dialect, table string, f *frame.Frame) (string, error) {
	var fields []string
	for _, nm := range f.ColumnNames() {
		c, _ := f.Column(nm)

		ft, e := colType(dialect, c.DataType())
		if e != nil {
			return "", e
		}

		fields = append(fields, fieldName(nm)+" "+ft)
	}

	switch dialect {
	case CH:
		return fmt.Sprintf("CREATE TABLE %s (%s) ENGINE = MergeTree ORDER BY tuple()",
			table, strings.Join(fields, ", ")), nil
	default:
		return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(fields, ", ")), nil
	}
}

func dropStatement(table string) string {
	return "DROP TABLE IF EXISTS " + table
}

// insertStatement builds the row INSERT with dialect-appropriate placeholders.
func insertStatement(dialect, table string, f *frame.Frame) string {
	names := f.ColumnNames()

	fields := make([]string, len(names))
	holders := make([]string, len(names))
	for ind, nm := range names {
		fields[ind] = fieldName(nm)
		if dialect == PG {
			holders[ind] = fmt.Sprintf("$%d", ind+1)
			continue
		}
		holders[ind] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(fields, ", "), strings.Join(holders, ", "))
}

// Save writes f to table, creating it first.  With overwrite, an existing table is
// dropped.
func (d *Dialect) Save(table string, overwrite bool, f *frame.Frame) error {
	if overwrite {
		if _, e := d.db.Exec(dropStatement(table)); e != nil {
			return fmt.Errorf("dropping %s: %w", table, e)
		}
	}

	create, e := createStatement(d.dialect, table, f)
	if e != nil {
		return e
	}

	if _, e := d.db.Exec(create); e != nil {
		return fmt.Errorf("creating %s: %w", table, e)
	}

	tx, ex := d.db.Begin()
	if ex != nil {
		return ex
	}

	stmt, exx := tx.Prepare(insertStatement(d.dialect, table, f))
	if exx != nil {
		_ = tx.Rollback()
		return exx
	}

	names := f.ColumnNames()
	for row := 0; row < f.RowCount(); row++ {
		v := make([]any, len(names))
		for ind, nm := range names {
			c, _ := f.Column(nm)
			x := c.Element(row)
			// NULL out missing floats
			if fv, ok := x.(float64); ok && math.IsNaN(fv) {
				x = nil
			}
			v[ind] = x
		}

		if _, e := stmt.Exec(v...); e != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting into %s: %w", table, e)
		}
	}

	return tx.Commit()
}

// Mirror opens a connection, saves f to table (replacing it) and closes up.
func Mirror(dialect, dsn, table string, f *frame.Frame) error {
	d, e := Open(dialect, dsn)
	if e != nil {
		return e
	}
	defer func() { _ = d.Close() }()

	return d.Save(table, true, f)
}
