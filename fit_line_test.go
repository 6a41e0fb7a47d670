package sandtrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func Test_SeedLine_RecoversKnownLine(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	zs := []float64{0, 100, 200, 300, 400}
	xs := make([]float64, len(zs))
	for i, z := range zs {
		xs[i] = 0.5*z + 10
	}
	l, err := sandtrack.SeedLine(zs, xs)
	require.NoError(err)
	assert.InDelta(0.5, l.M, 1e-9)
	assert.InDelta(10, l.Q, 1e-6)
}

func Test_SeedLine_DegenerateMismatchedLengths(t *testing.T) {
	assert := assert.New(t)
	_, err := sandtrack.SeedLine([]float64{0, 1}, []float64{0})
	assert.ErrorIs(err, sandtrack.ErrDegenerateFit)
}

func Test_FitLine_RefinesSeedTowardZeroResidual(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	zs := []float64{0, 100, 200, 300}
	xs := []float64{10, 60, 110, 160}
	points := make([]sandtrack.Point2, len(zs))
	for i := range zs {
		points[i] = sandtrack.Point2{X: zs[i], Y: xs[i]}
	}
	seed, err := sandtrack.SeedLine(zs, xs)
	require.NoError(err)

	rMeas := make([]float64, len(points))
	cfg := sandtrack.DefaultConfig().Fit
	fitted, result := sandtrack.FitLine(cfg, points, rMeas, seed, sandtrack.NewNelderMead(500))
	assert.InDelta(0.5, fitted.M, 1e-2)
	assert.Equal("non-bending-plane-line", result.Name)
}
