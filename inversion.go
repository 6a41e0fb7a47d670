/*------------------------------------------------------------------------------
* inversion.go : TDC -> drift-radius inversion, shared by both plane fits
*
* t_d_meas = TDC - t_s_meas - t_h_meas
* r_meas   = t_d_meas * v_drift
*
* t_h_meas is the approximation supplied by the caller (the reconstructor's
* prior-cycle value, initially 0); the hit's truth THit is not read here.
* t_s_meas needs the missing coordinate
* along the wire: for a horizontal wire that is x (from the current (X,Z)
* line guess), for a vertical wire that is y (from whichever circle
* intersection is closer to the nearest-z fired horizontal wire).
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math"

/* InvertTDC computes r_meas for hit given the reconstructor's current
 * (X,Z) line and (Z,Y) circle estimates, the set of currently fired
 * horizontal wires (for the vertical-wire missing-coordinate lookup), the
 * prior-cycle t_h approximation and the digitizer's signal/hit toggles.
 * With UseNonSmearedTrack set, the inversion starts from the truth TDC sum
 * rather than the (possibly smeared) measured TDC. It mutates and returns
 * a copy of hit with its measured fields filled. */
func InvertTDC(hit WireHit, cell Cell, line Line2D, circle Circle2D, horizontalHits []WireHit, thitApprox float64, cfg DigitizerConfig) WireHit {
	out := hit

	var missingCoord float64
	if hit.Horizontal {
		x := line.Eval(hit.Wire.Center.Z)
		if math.IsNaN(x) {
			x = hit.Wire.Center.Y /* NaN guess intercepted: fall back to the wire center coordinate */
		}
		missingCoord = x
	} else {
		yUpper, yLower := circle.Intersections(hit.Wire.Center.Z)
		nearestY := nearestZHorizontalY(horizontalHits, hit.Wire.Center.Z, hit.Wire.Center.Y)
		if math.IsNaN(yUpper) || math.IsNaN(yLower) {
			missingCoord = hit.Wire.Center.Y
		} else if math.Abs(yUpper-nearestY) <= math.Abs(yLower-nearestY) {
			missingCoord = yUpper
		} else {
			missingCoord = yLower
		}
	}
	out.MissingCoord = missingCoord

	var tSignalMeas float64
	if cfg.IncludeSignalPropagation && cfg.VSignal > 0 {
		signalOrigin := pointOnWireAtMissingCoord(hit.Wire, hit.Horizontal, missingCoord)
		tSignalMeas = signalOrigin.Dist(hit.Wire.ReadoutPoint()) / cfg.VSignal
	}
	out.TSignalMeasured = tSignalMeas

	tHitMeas := thitApprox
	if !cfg.IncludeHitTime {
		tHitMeas = 0
	}
	out.THitMeasured = tHitMeas

	tdc := hit.TDC
	if cfg.UseNonSmearedTrack {
		tdc = hit.TDrift + hit.TSignal + hit.THit
	}
	tDriftMeas := tdc - tSignalMeas - tHitMeas
	out.TDriftMeasured = tDriftMeas
	out.RMeasured = tDriftMeas * cell.VDrift
	return out
}

/* nearestZHorizontalY returns the Y of the fired horizontal wire closest in
 * z to targetZ, or fallback if hits is empty. */
func nearestZHorizontalY(hits []WireHit, targetZ, fallback float64) float64 {
	if len(hits) == 0 {
		return fallback
	}
	best := hits[0]
	bestDZ := math.Abs(best.Wire.Center.Z - targetZ)
	for _, h := range hits[1:] {
		if dz := math.Abs(h.Wire.Center.Z - targetZ); dz < bestDZ {
			best, bestDZ = h, dz
		}
	}
	return best.Wire.Center.Y
}

/* pointOnWireAtMissingCoord returns the point along w whose world
 * coordinate on the wire's dominant axis (x for a horizontal wire, y for a
 * vertical one) equals coord. */
func pointOnWireAtMissingCoord(w Wire, horizontal bool, coord float64) Point3 {
	dir := w.Direction()
	if horizontal {
		if dir.X == 0 {
			return w.Center
		}
		return w.PointAt((coord - w.Center.X) / dir.X)
	}
	if dir.Y == 0 {
		return w.Center
	}
	return w.PointAt((coord - w.Center.Y) / dir.Y)
}
