package sandtrack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func twoPlaneGeometry(t *testing.T) (*sandtrack.Geometry, *sandtrack.Config) {
	t.Helper()
	cfg := sandtrack.DefaultConfig()
	cfg.Orientations = map[int]sandtrack.OrientationConfig{
		0: {Angle: 0, Offset: 5, Spacing: 10, MinLength: 50, VDrift: 0.05},
		1: {Angle: math.Pi / 2, Offset: 5, Spacing: 10, MinLength: 50, VDrift: 0.05},
	}

	box := sandtrack.Box{HalfX: 500, HalfY: 60, HalfZ: 25}
	plane0 := &sandtrack.VolumeNode{
		Name:  "A0_module1_0_PlaneType0",
		Shape: box,
		Local: sandtrack.RotationZ(0, sandtrack.Point3{Z: 0}),
	}
	plane1 := &sandtrack.VolumeNode{
		Name:  "A0_module1_1_PlaneType1",
		Shape: box,
		Local: sandtrack.RotationZ(0, sandtrack.Point3{Z: 100}),
	}
	root := &sandtrack.VolumeNode{
		Name:     "world",
		Shape:    sandtrack.Box{HalfX: 1e6, HalfY: 1e6, HalfZ: 1e6},
		Local:    sandtrack.Identity(),
		Children: []*sandtrack.VolumeNode{plane0, plane1},
	}

	g, err := sandtrack.Build(root, cfg)
	require.NoError(t, err)
	return g, cfg
}

func Test_Build_ProducesTwoOrderedPlanes(t *testing.T) {
	assert := assert.New(t)
	g, _ := twoPlaneGeometry(t)
	planes := g.Planes()
	require.Len(t, planes, 2)
	assert.Less(planes[0].Position.Z, planes[1].Position.Z)
	assert.Greater(planes[0].NumCells(), 0)
	assert.Greater(planes[1].NumCells(), 0)
}

func Test_Build_PlaneAndCellLookup(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, _ := twoPlaneGeometry(t)
	plane := g.Planes()[0]

	got, err := g.PlaneByID(plane.ID)
	require.NoError(err)
	assert.Equal(plane.ID, got.ID)

	cell := plane.Cells()[0]
	gotCell, err := g.CellByID(cell.ID)
	require.NoError(err)
	assert.Equal(cell.Wire.ID, gotCell.Wire.ID)

	_, err = g.CellByID(-1)
	assert.ErrorIs(err, sandtrack.ErrUnknownCell)
}

func Test_GetCellAtPoint_FindsNearestCell(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, _ := twoPlaneGeometry(t)
	plane := g.Planes()[0]
	wantCell := plane.Cells()[len(plane.Cells())/2]

	cell, err := g.GetCellAtPoint(wantCell.Wire.Center)
	require.NoError(err)
	assert.Equal(wantCell.ID, cell.ID)
}

func Test_AdjacentCells_AreSymmetric(t *testing.T) {
	require := require.New(t)
	g, _ := twoPlaneGeometry(t)
	for _, p := range g.Planes() {
		for _, c := range p.Cells() {
			neighbors, err := g.AdjacentCells(c.ID)
			require.NoError(err)
			for _, n := range neighbors {
				back, err := g.AdjacentCells(n.ID)
				require.NoError(err)
				found := false
				for _, b := range back {
					if b.ID == c.ID {
						found = true
						break
					}
				}
				require.True(found, "adjacency must be symmetric")
			}
		}
	}
}

func Test_FindNextActiveLayer_WithinBound(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, _ := twoPlaneGeometry(t)
	start := sandtrack.Point3{X: 0, Y: 0, Z: 25}
	plane, err := g.FindNextActiveLayer(start, sandtrack.Point3{Z: 1}, 60)
	require.NoError(err)
	assert.InDelta(100, plane.Position.Z, 1e-9)
}

func Test_FindNextActiveLayer_NoneFound(t *testing.T) {
	assert := assert.New(t)
	g, _ := twoPlaneGeometry(t)
	start := sandtrack.Point3{X: 0, Y: 0, Z: 25}
	_, err := g.FindNextActiveLayer(start, sandtrack.Point3{Z: 1}, 1)
	assert.ErrorIs(err, sandtrack.ErrNoActiveLayer)
}

func Test_SegmentDistance_ParallelSegments(t *testing.T) {
	assert := assert.New(t)
	p1 := sandtrack.Point3{X: 0, Y: 0, Z: 0}
	p2 := sandtrack.Point3{X: 10, Y: 0, Z: 0}
	q1 := sandtrack.Point3{X: 0, Y: 5, Z: 0}
	q2 := sandtrack.Point3{X: 10, Y: 5, Z: 0}
	assert.InDelta(5, sandtrack.SegmentDistance(p1, p2, q1, q2), 1e-9)
}

func Test_ClosestPointsOnSegments_Perpendicular(t *testing.T) {
	assert := assert.New(t)
	p1 := sandtrack.Point3{X: -10, Y: 0, Z: 0}
	p2 := sandtrack.Point3{X: 10, Y: 0, Z: 0}
	q1 := sandtrack.Point3{X: 0, Y: -10, Z: 5}
	q2 := sandtrack.Point3{X: 0, Y: 10, Z: 5}
	s, tt, dist := sandtrack.ClosestPointsOnSegments(p1, p2, q1, q2)
	assert.InDelta(0.5, s, 1e-9)
	assert.InDelta(0.5, tt, 1e-9)
	assert.InDelta(5, dist, 1e-9)
}

func Test_BuildFromWireInfo_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, cfg := twoPlaneGeometry(t)
	plane := g.Planes()[0]
	var wires []sandtrack.Wire
	for _, c := range plane.Cells() {
		wires = append(wires, c.Wire)
	}

	flat, err := sandtrack.BuildFromWireInfo(wires, cfg)
	require.NoError(err)
	cell, err := flat.CellByID(wires[0].ID)
	require.NoError(err)
	assert.Equal(wires[0].ID, cell.Wire.ID)
}
