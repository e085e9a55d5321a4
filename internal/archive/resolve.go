package archive

import "time"

// Resolve locates the requested instant within the series.
//
// When no exact observation exists, Fallback is taken from the subset of
// observations at or after the requested instant: its LAST element, not
// its first. That reproduces the established behaviour of the archive tool
// this service replaces; switching to the nearest future observation would
// alter results for every non-exact query and needs a product decision.
func Resolve(s *Series, requested time.Time) (ResolvedInstant, error) {
	if len(s.Month(requested.Year(), requested.Month())) == 0 {
		return ResolvedInstant{}, &NoDataForMonthError{
			Year:  requested.Year(),
			Month: requested.Month(),
		}
	}

	tail := s.From(requested)
	_, exact := s.Lookup(requested)

	if !exact {
		if len(tail) == 0 {
			_, last := s.Coverage()
			return ResolvedInstant{}, &NoFutureDataError{LastObservation: last}
		}
		if len(tail) == s.Len() {
			first, _ := s.Coverage()
			return ResolvedInstant{}, &OutOfCoverageError{CoverageStart: first}
		}
	}

	return ResolvedInstant{
		Requested: requested,
		Exact:     exact,
		Fallback:  tail[len(tail)-1].Timestamp,
	}, nil
}
