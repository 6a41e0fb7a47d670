package sandtrack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func circlePoints(cz, cy, r float64, n int) []sandtrack.Point2 {
	pts := make([]sandtrack.Point2, n)
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = sandtrack.Point2{X: cz + r*math.Cos(phi), Y: cy + r*math.Sin(phi)}
	}
	return pts
}

func Test_SeedCircle_RecoversKnownCircle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	pts := circlePoints(10, -5, 200, 12)
	c, err := sandtrack.SeedCircle(pts)
	require.NoError(err)
	assert.InDelta(10, c.Center.X, 1e-6)
	assert.InDelta(-5, c.Center.Y, 1e-6)
	assert.InDelta(200, c.R, 1e-6)
}

func Test_SeedCircle_DegenerateTooFewPoints(t *testing.T) {
	assert := assert.New(t)
	_, err := sandtrack.SeedCircle([]sandtrack.Point2{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorIs(err, sandtrack.ErrDegenerateFit)
}

func Test_FitCircle_RefinesSeedTowardZeroResidual(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	pts := circlePoints(0, 0, 150, 10)
	seed, err := sandtrack.SeedCircle(pts)
	require.NoError(err)

	rMeas := make([]float64, len(pts))
	cfg := sandtrack.DefaultConfig().Fit
	fitted, result := sandtrack.FitCircle(cfg, pts, rMeas, seed, sandtrack.NewNelderMead(500))
	assert.InDelta(150, fitted.R, 1)
	assert.Equal("bending-plane-circle", result.Name)
	assert.Len(result.Parameters, 3)
}
