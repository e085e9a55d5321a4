package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akozlov/weather-archive/internal/archive"
)

func seriesOf(ts ...time.Time) *archive.Series {
	obs := make([]archive.Observation, 0, len(ts))
	for _, t := range ts {
		obs = append(obs, archive.Observation{Timestamp: t})
	}
	return archive.NewSeries(obs)
}

func TestSeriesStoreReplace(t *testing.T) {
	initial := seriesOf(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	st := NewSeriesStore(initial)
	assert.Same(t, initial, st.Current())

	// A reader holding the old snapshot is unaffected by a swap.
	held := st.Current()

	replacement := seriesOf(
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC),
	)
	st.Replace(replacement)

	assert.Same(t, replacement, st.Current())
	assert.Equal(t, 1, held.Len())
}
