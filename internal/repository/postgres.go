package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seismic-api/internal/reference"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// rowIDColumn keeps the import order of reference rows.
const rowIDColumn = "row_id"

// DB is the part of *pgx.Conn and *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Repository stores reference tables in PostgreSQL
type Repository struct {
	db DB
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Source returns a reference source reading every row of the given table in import order
func (r *Repository) Source(table string) reference.Source {
	return &tableSource{db: r.db, table: table}
}

type tableSource struct {
	db    DB
	table string
}

func (s *tableSource) Name() string { return "postgres:" + s.table }

func (s *tableSource) Read(ctx context.Context) (*reference.Frame, error) {
	ident := pgx.Identifier{s.table}.Sanitize()
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", ident, pgx.Identifier{rowIDColumn}.Sanitize())

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var keep []int
	frame := &reference.Frame{}
	for i, fd := range rows.FieldDescriptions() {
		if fd.Name == rowIDColumn {
			continue
		}
		keep = append(keep, i)
		frame.Header = append(frame.Header, fd.Name)
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan %s row: %w", s.table, err)
		}
		record := make([]string, len(keep))
		for j, i := range keep {
			record[j] = cellString(vals[i])
		}
		frame.Rows = append(frame.Rows, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return frame, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// CreateReferenceTable creates a table shaped like the reference table. With replace, an existing table is dropped first.
func (r *Repository) CreateReferenceTable(ctx context.Context, name string, t *reference.Table, replace bool) error {
	ident := pgx.Identifier{name}.Sanitize()

	if replace {
		if _, err := r.db.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
			return fmt.Errorf("repository: failed to drop %s: %w", name, err)
		}
	}

	defs := []string{pgx.Identifier{rowIDColumn}.Sanitize() + " BIGSERIAL PRIMARY KEY"}
	for _, col := range t.Columns() {
		colType := "TEXT"
		switch {
		case col == reference.LatitudeColumn || col == reference.LongitudeColumn:
			colType = "DOUBLE PRECISION NOT NULL"
		case t.IsValueColumn(col):
			colType = "DOUBLE PRECISION"
		}
		defs = append(defs, pgx.Identifier{col}.Sanitize()+" "+colType)
	}

	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", ident, strings.Join(defs, ",\n\t"))
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to create %s: %w", name, err)
	}
	return nil
}

// CopyReferenceTable bulk inserts every reference point. Missing values are stored as NULL.
func (r *Repository) CopyReferenceTable(ctx context.Context, name string, t *reference.Table) (int64, error) {
	columns := t.Columns()
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{name},
		columns,
		pgx.CopyFromSlice(t.Len(), func(i int) ([]any, error) {
			p := t.Point(i)
			row := make([]any, len(columns))
			for j, col := range columns {
				switch {
				case col == reference.LatitudeColumn:
					row[j] = p.Latitude
				case col == reference.LongitudeColumn:
					row[j] = p.Longitude
				case t.IsValueColumn(col):
					if v := p.Values[col]; !math.IsNaN(v) {
						row[j] = v
					}
				default:
					row[j] = p.Attributes[col]
				}
			}
			return row, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy into %s: %w", name, err)
	}
	return n, nil
}

// CountRows returns the number of rows in the table
func (r *Repository) CountRows(ctx context.Context, name string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{name}.Sanitize()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count rows of %s: %w", name, err)
	}
	return count, nil
}
