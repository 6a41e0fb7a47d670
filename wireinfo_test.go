package sandtrack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func Test_WireInfo_WriteReadRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	wires := []sandtrack.Wire{
		{
			ID:          1,
			P1:          sandtrack.Point3{X: -500, Y: 10, Z: 20},
			P2:          sandtrack.Point3{X: 500, Y: 10, Z: 20},
			Center:      sandtrack.Point3{X: 0, Y: 10, Z: 20},
			Length:      1000,
			Orientation: sandtrack.OrientHorizontal,
		},
		{
			ID:          2,
			P1:          sandtrack.Point3{X: 5, Y: -500, Z: 40},
			P2:          sandtrack.Point3{X: 5, Y: 500, Z: 40},
			Center:      sandtrack.Point3{X: 5, Y: 0, Z: 40},
			Length:      1000,
			Orientation: sandtrack.OrientVertical,
		},
	}

	path := filepath.Join(t.TempDir(), "wires.csv")
	require.NoError(sandtrack.WriteWireInfo(path, wires))

	got, err := sandtrack.ReadWireInfo(path)
	require.NoError(err)
	require.Len(got, 2)
	assert.Equal(wires[0].ID, got[0].ID)
	assert.InDelta(wires[0].Center.Y, got[0].Center.Y, 1e-6)
	assert.InDelta(wires[1].Length, got[1].Length, 1e-6)
	assert.Equal(sandtrack.OrientVertical, got[1].Orientation)
}

func Test_ReadWireInfo_EmptyFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))
	_, err := sandtrack.ReadWireInfo(path)
	assert.Error(err)
}
