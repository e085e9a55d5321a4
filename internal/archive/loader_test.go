package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeColumn = "Local time at the station"

func writeFixture(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func fixtureOptions() LoadOptions {
	return LoadOptions{SkipRows: 2, TimeColumn: testTimeColumn, CSVSeparator: ';'}
}

func TestLoadRoundTrip(t *testing.T) {
	path := writeFixture(t,
		"# station export\n"+
			"# metadata\n"+
			testTimeColumn+";T;P;WW;W1\n"+
			"01.02.2005 03:00;-7,8;995.1;light snow;overcast\n"+
			"01.02.2005 06:00;-8,2;994.8;;\n"+
			"01.02.2005 09:00;;994.2;;fog\n")

	s, err := Load(path, fixtureOptions())
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	first, last := s.Coverage()
	assert.Equal(t, at(2005, time.February, 1, 3, 0), first)
	assert.Equal(t, at(2005, time.February, 1, 9, 0), last)

	obs := s.At(0)
	require.NotNil(t, obs.Temperature)
	assert.InDelta(t, -7.8, *obs.Temperature, 1e-9)
	require.NotNil(t, obs.WeatherPrimary)
	assert.Equal(t, "light snow", *obs.WeatherPrimary)

	// Missing cells come back as nil samples, not zeros.
	assert.Nil(t, s.At(1).WeatherPrimary)
	assert.Nil(t, s.At(2).Temperature)
	require.NotNil(t, s.At(2).WeatherSecondary)
	assert.Equal(t, "fog", *s.At(2).WeatherSecondary)
}

func TestLoadSortsAndDeduplicates(t *testing.T) {
	path := writeFixture(t,
		"#\n#\n"+
			testTimeColumn+";T;P;WW;W1\n"+
			"01.02.2005 09:00;3;;;\n"+
			"01.02.2005 03:00;1;;;\n"+
			"01.02.2005 09:00;9;;;\n") // duplicate timestamp, last wins

	s, err := Load(path, fixtureOptions())
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	assert.Equal(t, at(2005, time.February, 1, 3, 0), s.At(0).Timestamp)
	assert.Equal(t, at(2005, time.February, 1, 9, 0), s.At(1).Timestamp)
	require.NotNil(t, s.At(1).Temperature)
	assert.InDelta(t, 9.0, *s.At(1).Temperature, 1e-9)
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeFixture(t,
		"#\n#\n"+
			testTimeColumn+";T;P;WW;W1\n"+
			"01.02.2005 03:00;1;;;\n"+
			";;;;\n"+
			"01.02.2005 06:00;2;;;\n")

	s, err := Load(path, fixtureOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestLoadRejectsUnparsableTimestamp(t *testing.T) {
	path := writeFixture(t,
		"#\n#\n"+
			testTimeColumn+";T;P;WW;W1\n"+
			"01.02.2005 03:00;1;;;\n"+
			"2005-02-01 06:00;2;;;\n")

	_, err := Load(path, fixtureOptions())
	var formatErr *DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 5, formatErr.Line)
}

func TestLoadRejectsMissingTimeColumn(t *testing.T) {
	path := writeFixture(t,
		"#\n#\n"+
			"SomeOtherColumn;T;P\n"+
			"01.02.2005 03:00;1;2\n")

	_, err := Load(path, fixtureOptions())
	var formatErr *DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, testTimeColumn)
}

func TestLoadRejectsEmptyDataset(t *testing.T) {
	path := writeFixture(t,
		"#\n#\n"+
			testTimeColumn+";T;P;WW;W1\n")

	_, err := Load(path, fixtureOptions())
	var formatErr *DataFormatError
	require.ErrorAs(t, err, &formatErr)
}
