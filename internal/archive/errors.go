package archive

import (
	"fmt"
	"time"
)

// MissingFieldError reports a required selection that was not provided.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is not selected", e.Field)
}

// InvalidRangeError reports a value that is present but outside its domain
// bounds. Reason always states the valid bound.
type InvalidRangeError struct {
	Field  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// DataFormatError reports an unreadable archive export. It is fatal at
// startup; a reload that hits it keeps the previous series.
type DataFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// NoDataForMonthError reports that the archive holds no observation in the
// requested month.
type NoDataForMonthError struct {
	Year  int
	Month time.Month
}

func (e *NoDataForMonthError) Error() string {
	return fmt.Sprintf("no observations for %04d-%02d", e.Year, int(e.Month))
}

// NoFutureDataError reports a requested instant later than every archived
// observation. The archive is historical only.
type NoFutureDataError struct {
	LastObservation time.Time
}

func (e *NoFutureDataError) Error() string {
	return fmt.Sprintf("the archive ends at %s and holds no later observation; this is not a forecast service",
		e.LastObservation.Format("2006-01-02 15:04"))
}

// OutOfCoverageError reports a requested instant earlier than the whole
// archive.
type OutOfCoverageError struct {
	CoverageStart time.Time
}

func (e *OutOfCoverageError) Error() string {
	return fmt.Sprintf("observations are available from %s",
		e.CoverageStart.Format("2 January 2006"))
}
