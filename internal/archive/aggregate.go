package archive

import "time"

// DailyMeans groups the month's observations by calendar date and averages
// the non-missing temperatures per day. Days where every sample is missing
// are omitted. The result is ascending by date.
func DailyMeans(s *Series, year int, month time.Month) []DailyAggregate {
	var sums [32]float64
	var counts [32]int

	for _, obs := range s.Month(year, month) {
		if obs.Temperature == nil {
			continue
		}
		d := obs.Timestamp.Day()
		sums[d] += *obs.Temperature
		counts[d]++
	}

	out := make([]DailyAggregate, 0, 31)
	for d := 1; d <= 31; d++ {
		if counts[d] == 0 {
			continue
		}
		out = append(out, DailyAggregate{
			Date:            time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			MeanTemperature: sums[d] / float64(counts[d]),
			Samples:         counts[d],
		})
	}
	return out
}

// MaxTemperatureDays returns the highest DAILY MEAN temperature of the
// month and every day that reached it. The extremum is over the means, not
// over raw samples.
func MaxTemperatureDays(s *Series, year int, month time.Month) Extremum {
	means := DailyMeans(s, year, month)
	if len(means) == 0 {
		return Extremum{}
	}

	max := means[0].MeanTemperature
	for _, agg := range means[1:] {
		if agg.MeanTemperature > max {
			max = agg.MeanTemperature
		}
	}

	var days []time.Time
	for _, agg := range means {
		if agg.MeanTemperature == max {
			days = append(days, agg.Date)
		}
	}
	return Extremum{Value: max, Days: days, Found: true}
}

// MinPressureDays returns the lowest RAW per-record pressure of the month
// and the date of every record that reached it. Unlike the temperature
// extremum this one is over raw samples; equal dates collapse to one entry.
func MinPressureDays(s *Series, year int, month time.Month) Extremum {
	records := s.Month(year, month)

	min := 0.0
	found := false
	for _, obs := range records {
		if obs.Pressure == nil {
			continue
		}
		if !found || *obs.Pressure < min {
			min = *obs.Pressure
			found = true
		}
	}
	if !found {
		return Extremum{}
	}

	var days []time.Time
	for _, obs := range records {
		if obs.Pressure == nil || *obs.Pressure != min {
			continue
		}
		date := time.Date(year, month, obs.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
		if n := len(days); n > 0 && days[n-1].Equal(date) {
			continue
		}
		days = append(days, date)
	}
	return Extremum{Value: min, Days: days, Found: true}
}

// DayTemperatures extracts the intraday temperature series for one
// calendar date, in ascending time order. Records with a missing
// temperature stay in the series with a nil value so the hour axis never
// shifts against the temperature axis.
func DayTemperatures(s *Series, year int, month time.Month, day int) []HourTemp {
	records := s.Day(year, month, day)
	out := make([]HourTemp, 0, len(records))
	for _, obs := range records {
		out = append(out, HourTemp{
			Hour:        obs.Timestamp.Hour(),
			At:          obs.Timestamp,
			Temperature: obs.Temperature,
		})
	}
	return out
}
