package archive

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column headers of the archive export. The timestamp column carries a
// localized station name and is configured separately.
const (
	colTemperature      = "T"
	colPressure         = "P"
	colWeatherPrimary   = "WW"
	colWeatherSecondary = "W1"
)

// LoadOptions controls how a raw archive export is read.
type LoadOptions struct {
	// SkipRows is the number of leading metadata rows before the header.
	SkipRows int
	// TimeColumn is the localized header of the timestamp column.
	TimeColumn string
	// CSVSeparator is the field separator for CSV exports.
	CSVSeparator rune
}

// DefaultLoadOptions matches the rp5.ru export for the Sheremetyevo
// station the archive was built from.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		SkipRows:     6,
		TimeColumn:   "Местное время в Шереметьево / им. А. С. Пушкина (аэропорт)",
		CSVSeparator: ';',
	}
}

// Load reads the archive export at path into a Series. Spreadsheet
// (.xlsx) and CSV exports are supported; the format is chosen by file
// extension. Rows that are entirely blank are skipped; any other row with
// a missing or unparsable timestamp fails the whole load.
func Load(path string, opts LoadOptions) (*Series, error) {
	rows, err := readRows(path, opts)
	if err != nil {
		return nil, err
	}

	if len(rows) <= opts.SkipRows {
		return nil, &DataFormatError{Path: path, Reason: "no header row after metadata"}
	}
	rows = rows[opts.SkipRows:]

	cols, err := locateColumns(rows[0], path, opts.TimeColumn)
	if err != nil {
		return nil, err
	}

	obs := make([]Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := opts.SkipRows + i + 2
		if blankRow(row) {
			continue
		}

		raw := cell(row, cols.time)
		ts, err := time.Parse(TimestampLayout, raw)
		if err != nil {
			return nil, &DataFormatError{
				Path:   path,
				Line:   line,
				Reason: fmt.Sprintf("unparsable timestamp %q", raw),
			}
		}

		o := Observation{Timestamp: ts}
		if v, ok := parseSample(cell(row, cols.temperature)); ok {
			o.Temperature = &v
		}
		if v, ok := parseSample(cell(row, cols.pressure)); ok {
			o.Pressure = &v
		}
		if v := strings.TrimSpace(cell(row, cols.weatherPrimary)); v != "" {
			o.WeatherPrimary = &v
		}
		if v := strings.TrimSpace(cell(row, cols.weatherSecondary)); v != "" {
			o.WeatherSecondary = &v
		}
		obs = append(obs, o)
	}

	if len(obs) == 0 {
		return nil, &DataFormatError{Path: path, Reason: "no observation rows"}
	}
	return NewSeries(obs), nil
}

type columnIndexes struct {
	time             int
	temperature      int
	pressure         int
	weatherPrimary   int
	weatherSecondary int
}

func locateColumns(header []string, path, timeColumn string) (columnIndexes, error) {
	cols := columnIndexes{
		time:             -1,
		temperature:      -1,
		pressure:         -1,
		weatherPrimary:   -1,
		weatherSecondary: -1,
	}

	for i, h := range header {
		switch strings.TrimSpace(h) {
		case timeColumn:
			cols.time = i
		case colTemperature:
			cols.temperature = i
		case colPressure:
			cols.pressure = i
		case colWeatherPrimary:
			cols.weatherPrimary = i
		case colWeatherSecondary:
			cols.weatherSecondary = i
		}
	}

	if cols.time < 0 {
		return cols, &DataFormatError{
			Path:   path,
			Reason: fmt.Sprintf("timestamp column %q not found in header", timeColumn),
		}
	}
	return cols, nil
}

func readRows(path string, opts LoadOptions) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readSpreadsheet(path)
	default:
		return readCSV(path, opts.CSVSeparator)
	}
}

func readSpreadsheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DataFormatError{Path: path, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DataFormatError{Path: path, Reason: err.Error()}
	}
	return rows, nil
}

func readCSV(path string, separator rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = separator
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &DataFormatError{Path: path, Reason: err.Error()}
	}
	return rows, nil
}

// cell returns row[i], tolerating short rows and unmapped columns.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseSample parses a numeric cell. Localized exports use a decimal
// comma. Empty cells are missing samples.
func parseSample(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
