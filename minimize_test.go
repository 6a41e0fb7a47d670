package sandtrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sandtrack"
)

func Test_NelderMead_MinimizesParabola(t *testing.T) {
	assert := assert.New(t)
	obj := func(x []float64) float64 {
		dx, dy := x[0]-3, x[1]+2
		return dx*dx + dy*dy
	}
	nm := sandtrack.NewNelderMead(500)
	res := nm.Minimize(obj, []float64{0, 0}, []float64{1, 1})
	assert.InDelta(3, res.X[0], 1e-3)
	assert.InDelta(-2, res.X[1], 1e-3)
	assert.Equal(sandtrack.FitOK, res.Status)
}

func Test_ParameterErrors_UnitChiSquareRule(t *testing.T) {
	assert := assert.New(t)
	obj := func(x []float64) float64 {
		d := (x[0] - 3) / 0.5
		return d * d
	}
	errs := sandtrack.ParameterErrors(obj, []float64{3}, []float64{1})
	assert.InDelta(0.5, errs[0], 1e-3)
}

func Test_NelderMead_ReportsNonConvergentWhenStarved(t *testing.T) {
	assert := assert.New(t)
	obj := func(x []float64) float64 {
		return (x[0]-1000)*(x[0]-1000) + (x[1]-1000)*(x[1]-1000)
	}
	nm := sandtrack.NewNelderMead(1)
	res := nm.Minimize(obj, []float64{0, 0}, []float64{0.01, 0.01})
	assert.Equal(sandtrack.FitNonConvergent, res.Status)
}
