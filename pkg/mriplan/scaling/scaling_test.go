package scaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOverride(t *testing.T) {
	f, err := FromOverride(1.1)
	require.NoError(t, err)
	assert.Equal(t, 1.1, f.K)
	assert.Equal(t, SourceOverride, f.Source)
	assert.Contains(t, f.Note, "1.10")

	_, err = FromOverride(0)
	assert.ErrorIs(t, err, ErrInvalidFactor)

	_, err = FromOverride(-0.5)
	assert.ErrorIs(t, err, ErrInvalidFactor)
}

func TestFromFrequency(t *testing.T) {
	f := FromFrequency(2860, 2600)
	assert.InDelta(t, 1.1, f.K, 1e-9)
	assert.Equal(t, SourceFrequency, f.Source)

	slower := FromFrequency(1300, 2600)
	assert.InDelta(t, 0.5, slower.K, 1e-9)
}

func TestFromFrequencyUnknown(t *testing.T) {
	f := FromFrequency(0, 2600)
	assert.Equal(t, 1.0, f.K)
	assert.Contains(t, f.Note, "unavailable")
}

func TestApplyDirection(t *testing.T) {
	// k is local speed relative to reference: a faster machine multiplies
	// throughput up, a slower one multiplies it down.
	faster := Factor{K: 2.0}
	assert.InDelta(t, 8.4, faster.Apply(4.2), 1e-9)

	slower := Factor{K: 0.5}
	assert.InDelta(t, 2.1, slower.Apply(4.2), 1e-9)
}

func TestFromBenchmark(t *testing.T) {
	f := FromBenchmark()

	assert.Equal(t, SourceBenchmark, f.Source)
	assert.Greater(t, f.K, 0.0)
	assert.Contains(t, f.Note, "matmul")
}

func TestTimeMatmulPositive(t *testing.T) {
	elapsed := timeMatmul(64)
	assert.Greater(t, elapsed.Nanoseconds(), int64(0))
}
