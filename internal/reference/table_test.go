package reference

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seismic-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "reference.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

const sd1CSV = `Latitude,Longitude,SDS_Default,SDS_B,SD1_Default,Station
34.0,-118.0,,,0.6,LA1
34.5,-118.5,,,0.7,LA2
`

const sdsCSV = `Longitude,Latitude,SD1_Default,SDS_B,SDS_Default,Station
-117.0,33.0,,1.1,1.2,SD1
-117.5,33.5,NaN,1.3,1.4,SD2
`

func TestLoad_ConcatenatesSourcesInOrder(t *testing.T) {
	a := writeCSV(t, "sd1.csv", sd1CSV)
	b := writeCSV(t, "sds.csv", sdsCSV)

	table, err := Load(context.Background(), CSVFile(a), CSVFile(b))
	require.NoError(t, err)

	require.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"Latitude", "Longitude", "SDS_Default", "SDS_B", "SD1_Default", "Station"}, table.Columns())

	first := table.Point(0)
	assert.Equal(t, 34.0, first.Latitude)
	assert.Equal(t, -118.0, first.Longitude)
	assert.True(t, math.IsNaN(first.Values["SDS_Default"]))
	assert.Equal(t, 0.6, first.Values["SD1_Default"])
	assert.Equal(t, "LA1", first.Attributes["Station"])

	// columns of the second source are matched by name, not position
	third := table.Point(2)
	assert.Equal(t, 33.0, third.Latitude)
	assert.Equal(t, -117.0, third.Longitude)
	assert.Equal(t, 1.2, third.Values["SDS_Default"])
	assert.Equal(t, 1.1, third.Values["SDS_B"])
	assert.True(t, math.IsNaN(third.Values["SD1_Default"]))

	coords, values, err := table.ColumnValues("SDS_Default")
	require.NoError(t, err)
	require.Len(t, coords, 4)
	require.Len(t, values, 4)
	assert.Equal(t, models.Coordinate{Latitude: 33.5, Longitude: -117.5}, coords[3])
	assert.Equal(t, 1.4, values[3])

	assert.True(t, table.IsValueColumn("SDS_B"))
	assert.False(t, table.IsValueColumn("Station"))
	assert.False(t, table.IsValueColumn("Latitude"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
	}{
		{
			name:     "differing column sets",
			contents: []string{sd1CSV, "Latitude,Longitude,SDS_Default,SD1_Default\n1,2,3,4\n"},
		},
		{
			name:     "missing latitude",
			contents: []string{"Lat,Longitude,SDS_Default,SD1_Default\n1,2,3,4\n"},
		},
		{
			name:     "missing default column",
			contents: []string{"Latitude,Longitude,SDS_B,SD1_Default\n1,2,3,4\n"},
		},
		{
			name:     "duplicate column",
			contents: []string{"Latitude,Longitude,SDS_Default,SD1_Default,SDS_Default\n1,2,3,4,5\n"},
		},
		{
			name:     "non numeric value",
			contents: []string{"Latitude,Longitude,SDS_Default,SD1_Default\n1,2,abc,4\n"},
		},
		{
			name:     "missing coordinate",
			contents: []string{"Latitude,Longitude,SDS_Default,SD1_Default\n,2,3,4\n"},
		},
		{
			name:     "ragged row",
			contents: []string{"Latitude,Longitude,SDS_Default,SD1_Default\n1,2,3\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sources []Source
			for i, c := range tt.contents {
				sources = append(sources, CSVFile(writeCSV(t, "src"+string(rune('a'+i))+".csv", c)))
			}

			table, err := Load(context.Background(), sources...)
			assert.ErrorIs(t, err, ErrDataLoad)
			assert.Nil(t, table)
		})
	}
}

func TestLoad_UnreadableSource(t *testing.T) {
	_, err := Load(context.Background(), CSVFile(filepath.Join(t.TempDir(), "missing.csv")))
	assert.ErrorIs(t, err, ErrDataLoad)

	_, err = Load(context.Background())
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_MissingValueSpellings(t *testing.T) {
	path := writeCSV(t, "ref.csv", "\ufeffLatitude,Longitude,SDS_Default,SD1_Default\n1,2,nan,NA\n3,4,N/A,null\n")

	table, err := Load(context.Background(), CSVFile(path))
	require.NoError(t, err)

	for i := 0; i < table.Len(); i++ {
		p := table.Point(i)
		assert.True(t, math.IsNaN(p.Values["SDS_Default"]))
		assert.True(t, math.IsNaN(p.Values["SD1_Default"]))
	}
}

func TestLoad_XLSXSource(t *testing.T) {
	xlsxPath := createTestXLSX(t, [][]string{
		{"Latitude", "Longitude", "SDS_Default", "SD1_Default"},
		{"10", "20", "1.5", "0.5"},
		{"11", "21", "1.6"},
		{"", "", "", ""},
	})
	csvPath := writeCSV(t, "ref.csv", "Latitude,Longitude,SDS_Default,SD1_Default\n12,22,1.7,0.7\n")

	xlsxSrc, err := FileSource(xlsxPath)
	require.NoError(t, err)
	csvSrc, err := FileSource(csvPath)
	require.NoError(t, err)

	table, err := Load(context.Background(), xlsxSrc, csvSrc)
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, 1.5, table.Point(0).Values["SDS_Default"])
	assert.True(t, math.IsNaN(table.Point(1).Values["SD1_Default"]))
	assert.Equal(t, 12.0, table.Point(2).Latitude)
}

func TestFileSource_UnsupportedExtension(t *testing.T) {
	_, err := FileSource("reference.parquet")
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_CancelledContext(t *testing.T) {
	path := writeCSV(t, "ref.csv", "Latitude,Longitude,SDS_Default,SD1_Default\n1,2,3,4\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, CSVFile(path))
	assert.ErrorIs(t, err, context.Canceled)
}
