/*------------------------------------------------------------------------------
* minimize.go : Minimizer abstraction and a Nelder-Mead implementation
*
* Both plane fits depend on a small interface, not a concrete numerical
* package, so the numerical library choice never leaks into fit logic. The
* shipped implementation is a Nelder-Mead simplex search, which the
* digitizer's impact-parameter search also calls directly.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math"

/* Objective is a scalar function of a parameter vector, e.g. a chi-square
 * or a negative log-likelihood. */
type Objective func(x []float64) float64

/* MinimizeResult is what every Minimizer implementation returns. */
type MinimizeResult struct {
	X      []float64
	FVal   float64
	Iters  int
	Status FitStatus
}

/* Minimizer isolates the fit logic (fit_circle.go, fit_line.go) from the
 * numerical optimizer implementation. */
type Minimizer interface {
	Minimize(obj Objective, x0, step []float64) MinimizeResult
}

/* NelderMead is a gradient-free simplex minimizer, adequate for the small
 * (2-3 parameter) objectives the plane fits pose. */
type NelderMead struct {
	MaxIters int
	Tol      float64 /* convergence threshold on simplex spread */
	Alpha    float64 /* reflection */
	Gamma    float64 /* expansion */
	Rho      float64 /* contraction */
	Sigma    float64 /* shrink */
}

/* NewNelderMead returns a NelderMead with the textbook default coefficients. */
func NewNelderMead(maxIters int) *NelderMead {
	return &NelderMead{
		MaxIters: maxIters,
		Tol:      1e-10,
		Alpha:    1.0,
		Gamma:    2.0,
		Rho:      0.5,
		Sigma:    0.5,
	}
}

type simplexPoint struct {
	x []float64
	f float64
}

/* Minimize runs the Nelder-Mead simplex algorithm starting from x0, with
 * step sizing the initial simplex's edge length per dimension. */
func (nm *NelderMead) Minimize(obj Objective, x0, step []float64) MinimizeResult {
	n := len(x0)
	if n == 0 {
		return MinimizeResult{X: x0, Status: FitDegenerate}
	}

	simplex := make([]simplexPoint, n+1)
	simplex[0] = simplexPoint{x: append([]float64{}, x0...), f: obj(x0)}
	for i := 0; i < n; i++ {
		x := append([]float64{}, x0...)
		x[i] += step[i]
		simplex[i+1] = simplexPoint{x: x, f: obj(x)}
	}

	iters := 0
	for ; iters < nm.MaxIters; iters++ {
		sortSimplex(simplex)

		spread := 0.0
		for i := 1; i < len(simplex); i++ {
			spread += math.Abs(simplex[i].f - simplex[0].f)
		}
		if spread < nm.Tol {
			break
		}

		centroid := make([]float64, n)
		for i := 0; i < n; i++ { /* all but the worst point */
			for d := 0; d < n; d++ {
				centroid[d] += simplex[i].x[d]
			}
		}
		for d := 0; d < n; d++ {
			centroid[d] /= float64(n)
		}

		worst := simplex[n]
		reflected := reflect(centroid, worst.x, nm.Alpha)
		fReflected := obj(reflected)

		switch {
		case fReflected < simplex[0].f:
			expanded := reflect(centroid, worst.x, nm.Alpha*nm.Gamma)
			fExpanded := obj(expanded)
			if fExpanded < fReflected {
				simplex[n] = simplexPoint{x: expanded, f: fExpanded}
			} else {
				simplex[n] = simplexPoint{x: reflected, f: fReflected}
			}
		case fReflected < simplex[n-1].f:
			simplex[n] = simplexPoint{x: reflected, f: fReflected}
		default:
			contracted := reflect(centroid, worst.x, -nm.Rho)
			fContracted := obj(contracted)
			if fContracted < worst.f {
				simplex[n] = simplexPoint{x: contracted, f: fContracted}
			} else {
				for i := 1; i < len(simplex); i++ {
					for d := 0; d < n; d++ {
						simplex[i].x[d] = simplex[0].x[d] + nm.Sigma*(simplex[i].x[d]-simplex[0].x[d])
					}
					simplex[i].f = obj(simplex[i].x)
				}
			}
		}
	}

	sortSimplex(simplex)
	status := FitOK
	if iters >= nm.MaxIters {
		status = FitNonConvergent
	}
	return MinimizeResult{X: simplex[0].x, FVal: simplex[0].f, Iters: iters, Status: status}
}

func reflect(centroid, worst []float64, coeff float64) []float64 {
	out := make([]float64, len(centroid))
	for d := range out {
		out[d] = centroid[d] + coeff*(centroid[d]-worst[d])
	}
	return out
}

func sortSimplex(simplex []simplexPoint) {
	for i := 1; i < len(simplex); i++ {
		for j := i; j > 0 && simplex[j].f < simplex[j-1].f; j-- {
			simplex[j], simplex[j-1] = simplex[j-1], simplex[j]
		}
	}
}

/* ParameterErrors estimates one-sigma uncertainties at a minimum x by
 * scanning each parameter away from x until the objective rises one unit
 * above its minimum (the unit-chi-square rule), then bisecting for a tight
 * bound. step seeds the scan scale per dimension. */
func ParameterErrors(obj Objective, x, step []float64) []float64 {
	fmin := obj(x)
	errs := make([]float64, len(x))
	probe := func(i int, delta float64) float64 {
		p := append([]float64{}, x...)
		p[i] += delta
		return obj(p)
	}
	for i := range x {
		delta := math.Abs(step[i]) / 100
		if delta == 0 {
			delta = 1e-9
		}
		for iter := 0; iter < 60 && probe(i, delta) < fmin+1; iter++ {
			delta *= 2
		}
		lo, hi := 0.0, delta
		for iter := 0; iter < 40; iter++ {
			mid := (lo + hi) / 2
			if probe(i, mid) >= fmin+1 {
				hi = mid
			} else {
				lo = mid
			}
		}
		errs[i] = hi
	}
	return errs
}
