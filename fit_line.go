/*------------------------------------------------------------------------------
* fit_line.go : the non-bending-plane line fit
*
* Seeds from an ordinary least-squares regression of vertical wire (z,x)
* centers, then refines against the current drift-radius estimate.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import "gonum.org/v1/gonum/stat"

/* SeedLine regresses x = m*z + q via gonum/stat.LinearRegression. */
func SeedLine(zs, xs []float64) (Line2D, error) {
	if len(zs) < 2 || len(zs) != len(xs) {
		return Line2D{}, ErrDegenerateFit
	}
	q, m := stat.LinearRegression(zs, xs, nil, false)
	return Line2D{M: m, Q: q}, nil
}

/* lineObjective is the weighted drift-radius residual:
 * sum(d_line(w_i) - r_i)^2 / sigma^2, where d_line is the 2D point-to-line
 * distance from the wire center (z,x) to the candidate line. */
func lineObjective(points []Point2, rMeas []float64, sigma float64) Objective {
	return func(x []float64) float64 {
		l := Line2D{M: x[0], Q: x[1]}
		var sum float64
		for i, p := range points {
			resid := l.Distance(p) - rMeas[i]
			sum += resid * resid
		}
		return sum / (sigma * sigma)
	}
}

/* FitLine refines seed against the current drift-radius estimates rMeas
 * (one per point, same order as points). */
func FitLine(cfg FitConfig, points []Point2, rMeas []float64, seed Line2D, minimizer Minimizer) (Line2D, FitResult) {
	obj := lineObjective(points, rMeas, cfg.SigmaMM)
	x0 := []float64{seed.M, seed.Q}
	step := []float64{cfg.LineSlopeStep, cfg.LineInterceptStep}

	res := minimizer.Minimize(obj, x0, step)
	fitted := Line2D{M: res.X[0], Q: res.X[1]}
	errs := ParameterErrors(obj, res.X, step)

	result := FitResult{
		Name:       "non-bending-plane-line",
		Status:     res.Status,
		Iterations: res.Iters,
		Objective:  res.FVal,
		Parameters: []FitParameter{
			{Name: "m", Initial: x0[0], Value: res.X[0], Error: errs[0]},
			{Name: "q", Initial: x0[1], Value: res.X[1], Error: errs[1]},
		},
	}
	return fitted, result
}
