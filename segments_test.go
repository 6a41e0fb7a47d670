package sandtrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func Test_ResolveSegmentCells_FindsStartAndStopCells(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	geom, _ := twoPlaneGeometry(t)
	seg := sandtrack.EdepSegment{
		Start:     sandtrack.Point3{X: 1, Y: 1, Z: 2},
		Stop:      sandtrack.Point3{X: 1, Y: 1, Z: 98},
		PrimaryID: 1,
	}
	start, stop, err := sandtrack.ResolveSegmentCells(geom, seg)
	require.NoError(err)
	assert.InDelta(0, start.Wire.Center.Z, 25)
	assert.InDelta(100, stop.Wire.Center.Z, 25)
}

func Test_HelixFromTrajectory_MatchesInitialPoint(t *testing.T) {
	assert := assert.New(t)
	trj := sandtrack.Trajectory{
		PDG:             13,
		InitialMomentum: sandtrack.Point3{X: 0.5, Y: 0.3, Z: 0.8},
		Points:          []sandtrack.Point3{{X: 10, Y: 20, Z: 30}},
	}
	h := sandtrack.HelixFromTrajectory(trj)
	assert.Equal(-1, h.H)
	assert.Equal(sandtrack.Point3{X: 10, Y: 20, Z: 30}, h.X0)
}

func Test_HelixFromTrajectory_EmptyPointsReturnsZeroValue(t *testing.T) {
	assert := assert.New(t)
	h := sandtrack.HelixFromTrajectory(sandtrack.Trajectory{})
	assert.Equal(sandtrack.Helix{}, h)
}
