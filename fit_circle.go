/*------------------------------------------------------------------------------
* fit_circle.go : the bending-plane circle fit
*
* Seeds from an algebraic (Kasa) least-squares circle through the
* horizontal wire centers, then refines by minimizing the impact-parameter
* residual against the current drift-radius estimate.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

/* SeedCircle fits x^2+y^2+Dx+Ey+F=0 to points (here (z,y) wire centers) by
 * ordinary least squares (Kasa's linearisation), solved with gonum/mat
 * instead of hand-rolled Gaussian elimination. */
func SeedCircle(points []Point2) (Circle2D, error) {
	n := len(points)
	if n < 3 {
		return Circle2D{}, ErrDegenerateFit
	}

	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range points {
		a.Set(i, 0, p.X)
		a.Set(i, 1, p.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, -(p.X*p.X + p.Y*p.Y))
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	var x mat.VecDense
	if err := x.SolveVec(&ata, &atb); err != nil {
		return Circle2D{}, ErrDegenerateFit
	}

	d, e, f := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	zc, yc := -d/2, -e/2
	r2 := zc*zc + yc*yc - f
	if r2 <= 0 || math.IsNaN(r2) {
		return Circle2D{}, ErrDegenerateFit
	}
	return Circle2D{Center: Point2{X: zc, Y: yc}, R: math.Sqrt(r2)}, nil
}

/* circleObjective is the weighted impact-parameter residual:
 * sum(|‖p_i - c‖ - R| - r_i)^2 / sigma^2 */
func circleObjective(points []Point2, rMeas []float64, sigma float64) Objective {
	return func(x []float64) float64 {
		c := Circle2D{Center: Point2{X: x[0], Y: x[1]}, R: x[2]}
		var sum float64
		for i, p := range points {
			resid := c.Distance(p) - rMeas[i]
			sum += resid * resid
		}
		return sum / (sigma * sigma)
	}
}

/* FitCircle refines seed against the current drift-radius estimates rMeas
 * (one per point, same order), reporting the usual fit diagnostics. */
func FitCircle(cfg FitConfig, points []Point2, rMeas []float64, seed Circle2D, minimizer Minimizer) (Circle2D, FitResult) {
	obj := circleObjective(points, rMeas, cfg.SigmaMM)
	x0 := []float64{seed.Center.X, seed.Center.Y, seed.R}
	step := []float64{cfg.CircleCenterStep, cfg.CircleCenterStep, cfg.CircleRadiusStep}

	res := minimizer.Minimize(obj, x0, step)
	fitted := Circle2D{Center: Point2{X: res.X[0], Y: res.X[1]}, R: res.X[2]}
	errs := ParameterErrors(obj, res.X, step)

	result := FitResult{
		Name:       "bending-plane-circle",
		Status:     res.Status,
		Iterations: res.Iters,
		Objective:  res.FVal,
		Parameters: []FitParameter{
			{Name: "z_c", Initial: x0[0], Value: res.X[0], Error: errs[0]},
			{Name: "y_c", Initial: x0[1], Value: res.X[1], Error: errs[1]},
			{Name: "R", Initial: x0[2], Value: res.X[2], Error: errs[2]},
		},
	}
	return fitted, result
}
