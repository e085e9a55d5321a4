package archive

import "time"

// NoWeatherText is returned when neither weather-code source has a value
// for the resolved instant. Missing weather data is never an error.
const NoWeatherText = "no weather information available"

// synopticHours are the fixed reporting hours at which a primary (WW)
// weather code is expected.
var synopticHours = map[int]bool{
	3: true, 6: true, 9: true, 12: true, 15: true, 18: true, 21: true,
}

// WeatherText picks the displayed weather-condition code for a resolved
// query. On a synoptic hour the primary code of the observation at the
// requested instant (minutes zeroed) wins; otherwise the secondary,
// between-hours code of the fallback observation is used.
func WeatherText(s *Series, resolved ResolvedInstant, q Query) string {
	if synopticHours[q.Hour] {
		at := time.Date(q.Year, time.Month(q.Month), q.Day, q.Hour, 0, 0, 0, time.UTC)
		if obs, ok := s.Lookup(at); ok && obs.WeatherPrimary != nil {
			return *obs.WeatherPrimary
		}
	}

	if obs, ok := s.Lookup(resolved.Fallback); ok && obs.WeatherSecondary != nil {
		return *obs.WeatherSecondary
	}

	return NoWeatherText
}
