package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		table   map[int]float64
		wantErr error
	}{
		{
			name:    "empty table",
			table:   map[int]float64{},
			wantErr: ErrEmptyCurve,
		},
		{
			name:    "zero thread count",
			table:   map[int]float64{0: 10},
			wantErr: ErrInvalidPoint,
		},
		{
			name:    "negative runtime",
			table:   map[int]float64{1: -5},
			wantErr: ErrInvalidPoint,
		},
		{
			name:  "valid table",
			table: map[int]float64{1: 100, 2: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.table)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.table), c.Len())
		})
	}
}

func TestCurveOrdering(t *testing.T) {
	c, err := New(map[int]float64{8: 35, 1: 100, 4: 40, 2: 60})
	require.NoError(t, err)

	points := c.Points()
	require.Len(t, points, 4)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Threads, points[i].Threads)
	}

	assert.Equal(t, 1, c.MinThreads())
	assert.Equal(t, 8, c.MaxThreads())
}

func TestMinutes(t *testing.T) {
	c := MustNew(map[int]float64{1: 100, 4: 40})

	m, ok := c.Minutes(4)
	assert.True(t, ok)
	assert.Equal(t, 40.0, m)

	_, ok = c.Minutes(2)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	c := MustNew(map[int]float64{1: 100, 2: 60, 4: 40, 8: 35, 16: 30})

	filtered := c.Filter(4)
	assert.Equal(t, 3, filtered.Len())
	assert.Equal(t, 4, filtered.MaxThreads())

	// Original curve is untouched
	assert.Equal(t, 5, c.Len())

	empty := c.Filter(0)
	assert.True(t, empty.Empty())
}

func TestInterpolate(t *testing.T) {
	c := MustNew(map[int]float64{8: 35, 12: 32})

	tests := []struct {
		name        string
		threads     int
		wantMinutes float64
		wantAt      int
	}{
		{name: "exact key", threads: 8, wantMinutes: 35, wantAt: 8},
		{name: "between keys", threads: 10, wantMinutes: 33.5, wantAt: 10},
		{name: "below minimum clamps", threads: 2, wantMinutes: 35, wantAt: 8},
		{name: "above maximum clamps", threads: 24, wantMinutes: 32, wantAt: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, at, err := c.Interpolate(tt.threads)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMinutes, minutes, 1e-9)
			assert.Equal(t, tt.wantAt, at)
		})
	}
}

func TestInterpolateBounds(t *testing.T) {
	// Interpolated runtimes must lie between the endpoint runtimes.
	c := MustNew(map[int]float64{4: 65.29, 8: 50.255})

	for threads := 5; threads <= 7; threads++ {
		minutes, at, err := c.Interpolate(threads)
		require.NoError(t, err)
		assert.Equal(t, threads, at)
		assert.GreaterOrEqual(t, minutes, 50.255)
		assert.LessOrEqual(t, minutes, 65.29)
	}
}

func TestInterpolateEmpty(t *testing.T) {
	var c Curve
	_, _, err := c.Interpolate(4)
	assert.ErrorIs(t, err, ErrEmptyCurve)
}
