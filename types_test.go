package sandtrack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sandtrack"
)

func Test_Circle2D_DistanceIsZeroOnCircumference(t *testing.T) {
	assert := assert.New(t)
	c := sandtrack.Circle2D{Center: sandtrack.Point2{X: 10, Y: 5}, R: 100}
	p := sandtrack.Point2{X: 10 + 100*math.Cos(0.7), Y: 5 + 100*math.Sin(0.7)}
	assert.Less(c.Distance(p), 1e-9)
}

func Test_Circle2D_Intersections_SymmetricAboutCenter(t *testing.T) {
	assert := assert.New(t)
	c := sandtrack.Circle2D{Center: sandtrack.Point2{X: 0, Y: 0}, R: 50}
	upper, lower := c.Intersections(30)
	assert.InDelta(40, upper, 1e-9)
	assert.InDelta(-40, lower, 1e-9)
}

func Test_Circle2D_Intersections_NaNBeyondRadius(t *testing.T) {
	assert := assert.New(t)
	c := sandtrack.Circle2D{Center: sandtrack.Point2{}, R: 10}
	upper, lower := c.Intersections(100)
	assert.True(math.IsNaN(upper))
	assert.True(math.IsNaN(lower))
}

func Test_Line2D_EvalAndDistance(t *testing.T) {
	assert := assert.New(t)
	l := sandtrack.Line2D{M: 2, Q: 1}
	assert.InDelta(5, l.Eval(2), 1e-9)
	assert.InDelta(0, l.Distance(sandtrack.Point2{X: 2, Y: 5}), 1e-9)
}

func Test_Helix_PointAt_StartsAtX0(t *testing.T) {
	assert := assert.New(t)
	x0 := sandtrack.Point3{X: 1, Y: 2, Z: 3}
	h := sandtrack.NewHelix(1.5, 0.2, 0.4, 1, x0)
	p := h.PointAt(0)
	assert.InDelta(x0.X, p.X, 1e-9)
	assert.InDelta(x0.Y, p.Y, 1e-9)
	assert.InDelta(x0.Z, p.Z, 1e-9)
}

func Test_Helix_RangeFromZWindow_SetsLimits(t *testing.T) {
	assert := assert.New(t)
	h := sandtrack.NewHelix(2, 0.1, 0.5, 1, sandtrack.Point3{Z: 0})
	assert.False(h.HasLimits())
	restricted := h.RangeFromZWindow(0, 50)
	assert.True(restricted.HasLimits())
}

func Test_PerpMomentumFromRadius_Inverse(t *testing.T) {
	assert := assert.New(t)
	r := sandtrack.RadiusFromPerpMomentum(1.2)
	p := sandtrack.PerpMomentumFromRadius(r)
	assert.InDelta(1.2, p, 1e-9)
}

func Test_Cell_HalfDiagonal(t *testing.T) {
	assert := assert.New(t)
	c := sandtrack.Cell{Width: 6, Depth: 8}
	assert.InDelta(5, c.HalfDiagonal(), 1e-9)
}
