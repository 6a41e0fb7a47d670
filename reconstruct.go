/*------------------------------------------------------------------------------
* reconstruct.go : the iterative reconstructor
*
* Seeds the circle and line fits from wire centroids, alternates the
* TDC->drift-radius inversion
* with refitting for a fixed number of cycles, then combines the converged
* circle and line into a 3D helix and its momentum.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"math"
	"sort"
)

/* Reconstructor orchestrates the two plane fits over a fixed number of cycles. Helicity
 * is supplied by the caller (the seed helix or a charge determination
 * upstream), never inferred from curvature sign; no charge-determination
 * algorithm is in scope here. */
type Reconstructor struct {
	Minimizer Minimizer
	Helicity  int
}

/* NewReconstructor returns a Reconstructor using a default Nelder-Mead
 * minimizer for both plane fits. */
func NewReconstructor(helicity int) *Reconstructor {
	h := helicity
	if h != -1 && h != 1 {
		h = 1
	}
	return &Reconstructor{Minimizer: NewNelderMead(500), Helicity: h}
}

/* Reconstruct runs the full fitting pipeline over one event's fired wires. */
func (r *Reconstructor) Reconstruct(ctx *Context, hits []WireHit) (RecoResult, error) {
	horiz, vert := splitByOrientation(hits)
	if len(horiz) < 3 || len(vert) < 2 {
		return RecoResult{}, ErrDegenerateFit
	}

	horizPoints := wireCentersZY(horiz)
	vertPoints := wireCentersZX(vert)

	circle, err := SeedCircle(horizPoints)
	if err != nil {
		return RecoResult{}, err
	}
	line, err := SeedLine(zCoords(vertPoints), xCoords(vertPoints))
	if err != nil {
		return RecoResult{}, err
	}

	thitHoriz := make([]float64, len(horiz))
	thitVert := make([]float64, len(vert))

	var fitZY, fitXZ FitResult
	cfg := ctx.Config

	for cycle := 0; cycle < cfg.Fit.NCycles; cycle++ {
		invertedHoriz := make([]WireHit, len(horiz))
		for i, h := range horiz {
			cell, err := ctx.Geometry.CellByID(h.WireID)
			if err != nil {
				return RecoResult{}, err
			}
			invertedHoriz[i] = InvertTDC(h, *cell, line, circle, nil, thitHoriz[i], cfg.Digitizer)
		}

		invertedVert := make([]WireHit, len(vert))
		for i, v := range vert {
			cell, err := ctx.Geometry.CellByID(v.WireID)
			if err != nil {
				return RecoResult{}, err
			}
			invertedVert[i] = InvertTDC(v, *cell, line, circle, invertedHoriz, thitVert[i], cfg.Digitizer)
		}

		rMeasVert := make([]float64, len(invertedVert))
		for i, v := range invertedVert {
			rMeasVert[i] = v.RMeasured
		}
		line, fitXZ = FitLine(cfg.Fit, vertPoints, rMeasVert, line, r.Minimizer)

		rMeasHoriz := make([]float64, len(invertedHoriz))
		for i, h := range invertedHoriz {
			rMeasHoriz[i] = h.RMeasured
		}
		circle, fitZY = FitCircle(cfg.Fit, horizPoints, rMeasHoriz, circle, r.Minimizer)

		horiz, vert = invertedHoriz, invertedVert
		for i := range thitHoriz {
			thitHoriz[i] = horiz[i].THitMeasured
		}
		for i := range thitVert {
			thitVert[i] = vert[i].THitMeasured
		}
	}

	helix, momentum := r.combineToHelix(horiz, vert, circle, line)

	kept := make([]WireHit, 0, len(horiz)+len(vert))
	kept = append(kept, horiz...)
	kept = append(kept, vert...)

	return RecoResult{
		KeepThisEvent: true,
		FitZY:         fitZY,
		FitXZ:         fitXZ,
		RecoHelix:     helix,
		MomentumReco:  momentum,
		KeptHits:      kept,
	}, nil
}

func splitByOrientation(hits []WireHit) (horiz, vert []WireHit) {
	for _, h := range hits {
		if h.Horizontal {
			horiz = append(horiz, h)
		} else {
			vert = append(vert, h)
		}
	}
	return horiz, vert
}

func wireCentersZY(hits []WireHit) []Point2 {
	out := make([]Point2, len(hits))
	for i, h := range hits {
		out[i] = Point2{X: h.Wire.Center.Z, Y: h.Wire.Center.Y}
	}
	return out
}

func wireCentersZX(hits []WireHit) []Point2 {
	out := make([]Point2, len(hits))
	for i, h := range hits {
		out[i] = Point2{X: h.Wire.Center.Z, Y: h.Wire.Center.X}
	}
	return out
}

func zCoords(points []Point2) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func xCoords(points []Point2) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}

/* combineToHelix folds the converged circle and line into one helix: the
 * vertex is
 * the first fired wire (smallest z), projected onto the converged line and
 * circle; Phi0 is the angle of that vertex point on the circle; the line
 * slope gives tan(dip); helicity comes from the seed; momentum follows
 * |p_perp| = 0.3*B*R with direction from the circle's tangent at the
 * vertex and p_x = p_z / slope_line. */
func (r *Reconstructor) combineToHelix(horiz, vert []WireHit, circle Circle2D, line Line2D) (Helix, Point3) {
	all := append(append([]WireHit{}, horiz...), vert...)
	sort.Slice(all, func(i, j int) bool { return all[i].Wire.Center.Z < all[j].Wire.Center.Z })
	vertexZ := all[0].Wire.Center.Z
	lastZ := all[len(all)-1].Wire.Center.Z

	vertexX := line.Eval(vertexZ)
	yUpper, yLower := circle.Intersections(vertexZ)
	nearestY := nearestZHorizontalY(horiz, vertexZ, circle.Center.Y)
	vertexY := yUpper
	if !math.IsNaN(yLower) && math.Abs(yLower-nearestY) < math.Abs(yUpper-nearestY) {
		vertexY = yLower
	}

	phi0 := math.Atan2(vertexY-circle.Center.Y, vertexZ-circle.Center.X)
	dip := math.Atan(line.M)

	tangent := circle.TangentAt(Point2{X: vertexZ, Y: vertexY})
	if (lastZ-vertexZ >= 0) != (tangent.X >= 0) {
		tangent = tangent.Scale(-1)
	}

	rM := circle.R / 1000
	pT := PerpMomentumFromRadius(rM)
	pz := pT * tangent.X
	py := pT * tangent.Y
	var px float64
	if line.M != 0 {
		px = pz / line.M
	}

	helix := NewHelix(rM, dip, phi0, r.Helicity, Point3{X: vertexX, Y: vertexY, Z: vertexZ})
	momentum := Point3{X: px, Y: py, Z: pz}
	return helix, momentum
}
