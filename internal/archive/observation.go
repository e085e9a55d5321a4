package archive

import (
	"sort"
	"time"
)

// TimestampLayout is the observation time format used by the archive export.
const TimestampLayout = "02.01.2006 15:04"

// Observation is a single row of the loaded archive.
// Missing samples are represented as nil pointers, never as zero values.
type Observation struct {
	Timestamp        time.Time `json:"timestamp"`
	Temperature      *float64  `json:"temperature,omitempty"`
	Pressure         *float64  `json:"pressure,omitempty"`
	WeatherPrimary   *string   `json:"weatherPrimary,omitempty"`
	WeatherSecondary *string   `json:"weatherSecondary,omitempty"`
}

// Series is the loaded observation table: ascending by timestamp,
// deduplicated by timestamp, immutable after construction.
type Series struct {
	obs   []Observation
	index map[time.Time]int
}

// NewSeries builds a Series from observations in any order.
// The sort is stable and later duplicates of the same timestamp win,
// matching the load semantics of the source table.
func NewSeries(obs []Observation) *Series {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	deduped := make([]Observation, 0, len(sorted))
	for _, o := range sorted {
		if n := len(deduped); n > 0 && deduped[n-1].Timestamp.Equal(o.Timestamp) {
			deduped[n-1] = o
			continue
		}
		deduped = append(deduped, o)
	}

	index := make(map[time.Time]int, len(deduped))
	for i, o := range deduped {
		index[o.Timestamp] = i
	}

	return &Series{obs: deduped, index: index}
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.obs) }

// At returns the observation at position i.
func (s *Series) At(i int) Observation { return s.obs[i] }

// Coverage returns the first and last observation timestamps.
// Both are zero for an empty series.
func (s *Series) Coverage() (first, last time.Time) {
	if len(s.obs) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.obs[0].Timestamp, s.obs[len(s.obs)-1].Timestamp
}

// Lookup returns the observation recorded exactly at ts.
func (s *Series) Lookup(ts time.Time) (Observation, bool) {
	i, ok := s.index[ts]
	if !ok {
		return Observation{}, false
	}
	return s.obs[i], true
}

// From returns the suffix of observations with timestamp >= ts.
// The returned slice aliases the series and must not be mutated.
func (s *Series) From(ts time.Time) []Observation {
	i := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Timestamp.Before(ts)
	})
	return s.obs[i:]
}

// Month returns the observations falling in the given calendar month.
func (s *Series) Month(year int, month time.Month) []Observation {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.between(start, start.AddDate(0, 1, 0))
}

// Day returns the observations falling on the given calendar date.
func (s *Series) Day(year int, month time.Month, day int) []Observation {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return s.between(start, start.AddDate(0, 0, 1))
}

// between returns observations with start <= timestamp < end.
func (s *Series) between(start, end time.Time) []Observation {
	lo := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Timestamp.Before(start)
	})
	hi := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Timestamp.Before(end)
	})
	return s.obs[lo:hi]
}

// Query identifies the instant a user asked about. It is only constructed
// by ParseQuery after all field validation has passed.
type Query struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Time returns the requested instant.
func (q Query) Time() time.Time {
	return time.Date(q.Year, time.Month(q.Month), q.Day, q.Hour, q.Minute, 0, 0, time.UTC)
}

// ResolvedInstant is the outcome of locating a requested instant in the
// series. Fallback is the substitute observation timestamp used when no
// exact record exists.
type ResolvedInstant struct {
	Requested time.Time `json:"requested"`
	Exact     bool      `json:"exactMatch"`
	Fallback  time.Time `json:"fallback"`
}

// DailyAggregate is the mean temperature of one calendar day.
type DailyAggregate struct {
	Date            time.Time `json:"date"`
	MeanTemperature float64   `json:"meanTemperature"`
	Samples         int       `json:"samples"`
}

// Extremum is an extreme value together with every day on which it was
// reached. Days are ascending and deduplicated. Found is false when the
// window held no usable sample at all.
type Extremum struct {
	Value float64     `json:"value"`
	Days  []time.Time `json:"days"`
	Found bool        `json:"found"`
}

// HourTemp is one point of an intraday temperature series. A nil
// temperature is a recorded observation whose sample is missing; it is
// kept so hours and temperatures never lose alignment.
type HourTemp struct {
	Hour        int       `json:"hour"`
	At          time.Time `json:"at"`
	Temperature *float64  `json:"temperature"`
}

// Report bundles everything the presentation layer renders for one query.
type Report struct {
	Resolved       ResolvedInstant  `json:"resolved"`
	Weather        string           `json:"weather"`
	DailyMeans     []DailyAggregate `json:"dailyMeans"`
	MaxTemperature Extremum         `json:"maxTemperature"`
	MinPressure    Extremum         `json:"minPressure"`
	DaySeries      []HourTemp       `json:"daySeries"`
}
