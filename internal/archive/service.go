package archive

import "time"

// SeriesProvider yields the currently loaded series. The store implements
// it; tests can supply a fixed series directly.
type SeriesProvider interface {
	Current() *Series
}

// Service answers user queries against the loaded archive. All methods are
// pure reads over the immutable series and safe for concurrent use.
type Service struct {
	provider SeriesProvider
	years    YearRange
}

// NewService creates a new Service.
func NewService(provider SeriesProvider, years YearRange) *Service {
	return &Service{provider: provider, years: years}
}

// ParseQuery validates raw form fields against the service's supported
// year range.
func (s *Service) ParseQuery(raw RawQuery) (Query, error) {
	return ParseQuery(raw, s.years)
}

// Years returns the supported year range.
func (s *Service) Years() YearRange { return s.years }

// Coverage returns the first and last observation timestamps of the
// current series.
func (s *Service) Coverage() (first, last time.Time) {
	return s.provider.Current().Coverage()
}

// Report resolves the query and derives every view the presentation layer
// renders: the weather text, the monthly temperature trend and extrema,
// and the intraday series.
func (s *Service) Report(q Query) (*Report, error) {
	series := s.provider.Current()

	resolved, err := Resolve(series, q.Time())
	if err != nil {
		return nil, err
	}

	month := time.Month(q.Month)
	return &Report{
		Resolved:       resolved,
		Weather:        WeatherText(series, resolved, q),
		DailyMeans:     DailyMeans(series, q.Year, month),
		MaxTemperature: MaxTemperatureDays(series, q.Year, month),
		MinPressure:    MinPressureDays(series, q.Year, month),
		DaySeries:      DayTemperatures(series, q.Year, month, q.Day),
	}, nil
}

// MonthlyReport carries the month-window aggregates on their own.
type MonthlyReport struct {
	DailyMeans     []DailyAggregate `json:"dailyMeans"`
	MaxTemperature Extremum         `json:"maxTemperature"`
	MinPressure    Extremum         `json:"minPressure"`
}

// Monthly computes the month-window aggregates without resolving a full
// instant. An empty month is reported the same way the resolver would.
func (s *Service) Monthly(year int, month time.Month) (*MonthlyReport, error) {
	series := s.provider.Current()
	if len(series.Month(year, month)) == 0 {
		return nil, &NoDataForMonthError{Year: year, Month: month}
	}
	return &MonthlyReport{
		DailyMeans:     DailyMeans(series, year, month),
		MaxTemperature: MaxTemperatureDays(series, year, month),
		MinPressure:    MinPressureDays(series, year, month),
	}, nil
}

// Daily extracts the intraday temperature series for one calendar date.
func (s *Service) Daily(year int, month time.Month, day int) ([]HourTemp, error) {
	series := s.provider.Current()
	if len(series.Month(year, month)) == 0 {
		return nil, &NoDataForMonthError{Year: year, Month: month}
	}
	return DayTemperatures(series, year, month, day), nil
}
