package reference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"seismic-api/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrDataLoad reports unreadable or schema-incompatible reference data.
var ErrDataLoad = errors.New("reference: data load error")

const (
	LatitudeColumn  = "Latitude"
	LongitudeColumn = "Longitude"
)

// Table is the merged, immutable reference table. It is safe for concurrent readers.
type Table struct {
	columns    []string
	coords     []models.Coordinate
	values     map[string][]float64
	attributes map[string][]string
	lookup     *ColumnLookup
}

// Load reads every source and concatenates their rows in the given order.
// All sources must share the same column set.
func Load(ctx context.Context, sources ...Source) (*Table, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", ErrDataLoad)
	}

	frames := make([]*Frame, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			frame, err := src.Read(gctx)
			if errors.Is(err, ErrDataLoad) {
				return fmt.Errorf("reference: failed to read %s: %w", src.Name(), err)
			}
			if err != nil {
				return fmt.Errorf("%w: failed to read %s: %w", ErrDataLoad, src.Name(), err)
			}
			log.Debug().Str("source", src.Name()).Int("rows", len(frame.Rows)).Msg("reference source read")
			frames[i] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	columns, err := validateHeader(sources[0].Name(), frames[0].Header)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(frames); i++ {
		other, err := validateHeader(sources[i].Name(), frames[i].Header)
		if err != nil {
			return nil, err
		}
		if !sameColumns(columns, other) {
			return nil, fmt.Errorf("%w: %s columns %v differ from %s columns %v",
				ErrDataLoad, sources[i].Name(), other, sources[0].Name(), columns)
		}
	}

	lookup, err := NewColumnLookup(columns)
	if err != nil {
		return nil, err
	}

	t := &Table{
		columns:    columns,
		values:     make(map[string][]float64),
		attributes: make(map[string][]string),
		lookup:     lookup,
	}
	for _, col := range columns {
		switch {
		case col == LatitudeColumn || col == LongitudeColumn:
		case lookup.isValueColumn(col):
			t.values[col] = nil
		default:
			t.attributes[col] = nil
		}
	}

	for i, frame := range frames {
		if err := t.appendFrame(sources[i].Name(), frame); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) appendFrame(name string, frame *Frame) error {
	header := normalizeHeader(frame.Header)
	for r, row := range frame.Rows {
		if len(row) != len(header) {
			return fmt.Errorf("%w: %s row %d has %d fields, expected %d", ErrDataLoad, name, r+2, len(row), len(header))
		}

		var lat, lon float64
		for c, col := range header {
			cell := strings.TrimSpace(row[c])
			switch {
			case col == LatitudeColumn || col == LongitudeColumn:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: %s row %d: invalid %s %q", ErrDataLoad, name, r+2, col, cell)
				}
				if col == LatitudeColumn {
					lat = v
				} else {
					lon = v
				}
			case t.lookup.isValueColumn(col):
				v, err := parseValue(cell)
				if err != nil {
					return fmt.Errorf("%w: %s row %d: invalid %s %q", ErrDataLoad, name, r+2, col, cell)
				}
				t.values[col] = append(t.values[col], v)
			default:
				t.attributes[col] = append(t.attributes[col], cell)
			}
		}
		t.coords = append(t.coords, models.Coordinate{Latitude: lat, Longitude: lon})
	}
	return nil
}

// Len returns the number of reference points.
func (t *Table) Len() int { return len(t.coords) }

// Columns returns the schema in the column order of the first source.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// IsValueColumn reports whether col holds coefficient values.
func (t *Table) IsValueColumn(col string) bool {
	_, ok := t.values[col]
	return ok
}

// Lookup returns the column resolver built from the table schema.
func (t *Table) Lookup() *ColumnLookup { return t.lookup }

// Point returns the i-th reference point.
func (t *Table) Point(i int) models.ReferencePoint {
	p := models.ReferencePoint{
		Latitude:  t.coords[i].Latitude,
		Longitude: t.coords[i].Longitude,
		Values:    make(map[string]float64, len(t.values)),
	}
	for col, vals := range t.values {
		p.Values[col] = vals[i]
	}
	if len(t.attributes) > 0 {
		p.Attributes = make(map[string]string, len(t.attributes))
		for col, vals := range t.attributes {
			p.Attributes[col] = vals[i]
		}
	}
	return p
}

// ColumnValues returns the coordinates and values of one value column, aligned index for index.
// The returned slices share memory with the table and must not be modified.
func (t *Table) ColumnValues(column string) ([]models.Coordinate, []float64, error) {
	vals, ok := t.values[column]
	if !ok {
		return nil, nil, fmt.Errorf("reference: unknown value column %q", column)
	}
	return t.coords, vals, nil
}

func validateHeader(name string, header []string) ([]string, error) {
	columns := normalizeHeader(header)
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("%w: %s has an empty column name", ErrDataLoad, name)
		}
		if seen[col] {
			return nil, fmt.Errorf("%w: %s has duplicate column %q", ErrDataLoad, name, col)
		}
		seen[col] = true
	}
	for _, required := range []string{LatitudeColumn, LongitudeColumn} {
		if !seen[required] {
			return nil, fmt.Errorf("%w: %s is missing column %q", ErrDataLoad, name, required)
		}
	}
	return columns, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func parseValue(cell string) (float64, error) {
	switch strings.ToLower(cell) {
	case "", "nan", "na", "n/a", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
