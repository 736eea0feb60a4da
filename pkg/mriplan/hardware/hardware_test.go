package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	hw, err := Detect(Options{Logical: true})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, hw.Cores, 1)
	assert.Greater(t, hw.TotalRAMGB, 0.0)
	assert.True(t, hw.Logical)

	// Frequency may legitimately be unknown on some platforms.
	assert.GreaterOrEqual(t, hw.CPUMaxFreqMHz, 0.0)
}

func TestDetectReserveCores(t *testing.T) {
	base, err := Detect(Options{Logical: true})
	require.NoError(t, err)

	reserved, err := Detect(Options{Logical: true, ReserveCores: 1})
	require.NoError(t, err)
	assert.Equal(t, max(base.Cores-1, 1), reserved.Cores)

	// Reserving more cores than exist still leaves one.
	floor, err := Detect(Options{Logical: true, ReserveCores: 100000})
	require.NoError(t, err)
	assert.Equal(t, 1, floor.Cores)
}

func TestCoreKind(t *testing.T) {
	assert.Equal(t, "physical", Snapshot{}.CoreKind())
	assert.Equal(t, "logical", Snapshot{Logical: true}.CoreKind())
}

func TestSnapshotString(t *testing.T) {
	hw := Snapshot{Cores: 8, TotalRAMGB: 64, CPUMaxFreqMHz: 2600}
	s := hw.String()

	assert.Contains(t, s, "8 physical cores")
	assert.Contains(t, s, "64.0 GB RAM")
	assert.Contains(t, s, "2600 MHz")
}
