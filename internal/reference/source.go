package reference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v2"
)

// Frame is the raw tabular content of a source: a header row followed by data rows.
type Frame struct {
	Header []string
	Rows   [][]string
}

// Source is a tabular dataset the reference table can be built from.
type Source interface {
	Name() string
	Read(ctx context.Context) (*Frame, error)
}

// FileSource picks a source implementation from the file extension.
func FileSource(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return CSVFile(path), nil
	case ".xlsx":
		return XLSXFile(path, ""), nil
	default:
		return nil, fmt.Errorf("%w: unsupported reference file type %q", ErrDataLoad, path)
	}
}

type csvFile struct {
	path string
}

// CSVFile returns a Source reading a comma separated file with a header row.
func CSVFile(path string) Source {
	return &csvFile{path: path}
}

func (s *csvFile) Name() string { return s.path }

func (s *csvFile) Read(ctx context.Context) (*Frame, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file %s: %v", ErrDataLoad, s.path, err)
	}
	defer file.Close()

	return readCSV(ctx, s.path, file)
}

func readCSV(ctx context.Context, name string, r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header of %s: %v", ErrDataLoad, name, err)
	}

	frame := &Frame{Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read record of %s: %v", ErrDataLoad, name, err)
		}
		frame.Rows = append(frame.Rows, record)
	}

	return frame, nil
}

type xlsxFile struct {
	path  string
	sheet string
}

// XLSXFile returns a Source reading one sheet of an Excel workbook. An empty sheet name selects the first sheet.
func XLSXFile(path, sheet string) Source {
	return &xlsxFile{path: path, sheet: sheet}
}

func (s *xlsxFile) Name() string { return s.path }

func (s *xlsxFile) Read(ctx context.Context) (*Frame, error) {
	f, err := xlsx.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook %s: %v", ErrDataLoad, s.path, err)
	}

	var sheet *xlsx.Sheet
	if s.sheet != "" {
		sh, ok := f.Sheet[s.sheet]
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q not found in %s", ErrDataLoad, s.sheet, s.path)
		}
		sheet = sh
	} else {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrDataLoad, s.path)
		}
		sheet = f.Sheets[0]
	}

	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q of %s is empty", ErrDataLoad, sheet.Name, s.path)
	}

	frame := &Frame{Header: rowToStrings(sheet.Rows[0], 0)}
	width := len(frame.Header)
	for _, row := range sheet.Rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells := rowToStrings(row, width)
		if blank(cells) {
			continue
		}
		frame.Rows = append(frame.Rows, cells)
	}

	return frame, nil
}

// rowToStrings pads short rows to width; spreadsheets drop trailing empty cells.
func rowToStrings(row *xlsx.Row, width int) []string {
	if row == nil {
		return make([]string, width)
	}
	n := len(row.Cells)
	if width > n {
		n = width
	}
	cells := make([]string, n)
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
