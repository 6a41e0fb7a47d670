/*------------------------------------------------------------------------------
* digitizer.go : converting truth into wire hits
*
* Two producers feed the same WireHit consumer: DigitizeFromHelix (an
* analytic helix) and DigitizeFromSegments (Monte-Carlo energy-deposit
* segments). Both honour the signal-propagation and hit-time toggles
* carried on DigitizerConfig; only DigitizeFromHelix applies TDC smearing,
* and UseNonSmearedTrack is read by the inversion, not here. Neither reads
* a global.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"math"
	"sort"
)

/* DigitizeFromHelix fires every wire the helix passes close enough to.
 * Wires are processed in order of the helix arc length s at closest
 * approach so the hit-time chain (t_h =
 * t_h_prev + arc-length increment / c) has a well-defined "previous fired
 * wire on the same track". */
func DigitizeFromHelix(ctx *Context, helix Helix, wires []Wire) ([]WireHit, error) {
	cfg := ctx.Config
	type candidate struct {
		wire     Wire
		s, t, ip float64
	}

	var cands []candidate
	for _, w := range wires {
		restricted := helix.RangeFromZWindow(w.Center.Z, cfg.Digitizer.ZWindowHalfWidthMM)
		if restricted.LowLim > 0 {
			continue /* window entirely ahead of the track start: never fires */
		}
		s, t, ip := minImpactParameter(restricted, w)
		cands = append(cands, candidate{wire: w, s: s, t: t, ip: ip})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].s < cands[j].s })

	var hits []WireHit
	haveFired := false
	var prevS, prevTHit float64

	for _, c := range cands {
		cell, err := ctx.Geometry.CellByID(c.wire.ID)
		if err != nil {
			continue
		}
		if c.ip > cell.HalfDiagonal() {
			continue
		}
		if math.Abs(c.t) > c.wire.Length/2 {
			continue
		}

		tDrift := c.ip / cell.VDrift
		var tSignal, tHit float64
		if cfg.Digitizer.IncludeSignalPropagation {
			tSignal = signalPropagationTime(c.wire, c.t, cfg.Digitizer.VSignal)
		}
		if cfg.Digitizer.IncludeHitTime && haveFired {
			tHit = prevTHit + (c.s-prevS)/SpeedOfLight
		}
		tdc := tDrift + tSignal + tHit
		if cfg.Digitizer.IncludeTDCSmearing {
			tdc += ctx.Rand.NormFloat64() * cfg.Digitizer.TDCSmearingSigmaNs
		}

		hits = append(hits, WireHit{
			WireID:     c.wire.ID,
			Wire:       c.wire,
			Horizontal: c.wire.Orientation == OrientHorizontal,
			TDrift:     tDrift,
			TSignal:    tSignal,
			THit:       tHit,
			TDC:        tdc,
		})
		prevS, prevTHit, haveFired = c.s, tHit, true
	}
	return hits, nil
}

/* signalPropagationTime is the time for the pulse to travel from the
 * closest-approach point along the wire (parameter t, measured from
 * center) to its readout end. */
func signalPropagationTime(w Wire, t, vSignal float64) float64 {
	readoutT := w.Length / 2
	if w.Readout == ReadoutFirst {
		readoutT = -w.Length / 2
	}
	return math.Abs(readoutT-t) / vSignal
}

/* minImpactParameter finds (s,t) minimizing ||helix(s) - wire(t)|| within
 * the helix's arc-length window and the wire's extent, via a 2-parameter
 * Nelder-Mead search. */
func minImpactParameter(helix Helix, w Wire) (s, t, impactParam float64) {
	sLo, sHi := helix.LowLim, helix.UpLim
	if sHi <= sLo {
		sHi = sLo + 1
	}
	tLo, tHi := -w.Length/2, w.Length/2

	obj := func(x []float64) float64 {
		ss := clamp(x[0], sLo, sHi)
		tt := clamp(x[1], tLo, tHi)
		return helix.PointAt(ss).Dist(w.PointAt(tt))
	}

	nm := NewNelderMead(200)
	res := nm.Minimize(obj, []float64{(sLo + sHi) / 2, 0}, []float64{(sHi-sLo)/10 + 1e-6, w.Length/10 + 1e-6})

	s = clamp(res.X[0], sLo, sHi)
	t = clamp(res.X[1], tLo, tHi)
	impactParam = helix.PointAt(s).Dist(w.PointAt(t))
	return s, t, impactParam
}

/* DigitizeFromSegments fires wires struck by Monte-Carlo energy-deposit
 * segments. Only segments belonging to primaryID are considered;
 * when multiple segments map to the same wire, the one with the smallest
 * TDC is kept. */
func DigitizeFromSegments(ctx *Context, segments []EdepSegment, wires []Wire, primaryID int) ([]WireHit, error) {
	cfg := ctx.Config
	best := make(map[int64]WireHit)

	for _, seg := range segments {
		if seg.PrimaryID != primaryID {
			continue
		}
		midZ := seg.Midpoint3().Z
		for _, w := range wires {
			pitch, err := wireToWirePitch(ctx.Geometry, w)
			if err != nil {
				continue
			}
			if math.Abs(w.Center.Z-midZ) > pitch/2 {
				continue
			}

			tSeg, tWire, dist := ClosestPointsOnSegments(seg.Start, seg.Stop, w.P1, w.P2)
			cell, err := ctx.Geometry.CellByID(w.ID)
			if err != nil {
				continue
			}
			if dist >= cell.Width/2 {
				continue
			}

			wireParam := tWire*w.Length - w.Length/2
			tDrift := dist / cell.VDrift
			var tSignal float64
			if cfg.Digitizer.IncludeSignalPropagation {
				tSignal = signalPropagationTime(w, wireParam, cfg.Digitizer.VSignal)
			}
			var tHit float64
			if cfg.Digitizer.IncludeHitTime {
				tHit = seg.TimeAt(tSeg)
			}
			tdc := tDrift + tSignal + tHit

			hit := WireHit{
				WireID:      w.ID,
				Wire:        w,
				Horizontal:  w.Orientation == OrientHorizontal,
				TDrift:      tDrift,
				TSignal:     tSignal,
				THit:        tHit,
				TDC:         tdc,
				ContribHits: append([]int{}, seg.ContribIDs...),
			}
			if prev, ok := best[w.ID]; !ok || hit.TDC < prev.TDC {
				best[w.ID] = hit
			}
		}
	}

	hits := make([]WireHit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Wire.Center.Z < hits[j].Wire.Center.Z })
	return hits, nil
}

/* wireToWirePitch looks up the configured pitch for wire w's plane. */
func wireToWirePitch(g *Geometry, w Wire) (float64, error) {
	cell, err := g.CellByID(w.ID)
	if err != nil {
		return 0, err
	}
	return cell.Width, nil
}
