/*------------------------------------------------------------------------------
* selection.go : the event selection gate
*
* Checks particle species, per-supermodule fiducial volume and minimum hit
* multiplicity, and folds all three into RecoResult.KeepThisEvent. Selection
* never drops an event from a batch; it always produces a 1:1 output with
* the flag set or cleared.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math"

var superModuleRole = map[int]string{0: "A", 1: "B", 2: "C", 3: "X0", 4: "X1"}

/* SelectEvent evaluates the three gates against one reconstructed event
 * and returns whether it should be kept. pdg is the (assumed or truth-level)
 * particle species of the track; vertex and hits normally come straight from
 * a RecoResult. */
func SelectEvent(ctx *Context, pdg int, vertex Point3, hits []WireHit) bool {
	cfg := ctx.Config.Selection
	if !pdgAllowed(pdg, cfg.AllowedPDG) {
		return false
	}
	if !fiducialOK(ctx.Geometry, vertex, cfg) {
		return false
	}
	nHoriz, nVert := countByOrientation(hits)
	if nHoriz < cfg.MinHorizontalHits || nVert < cfg.MinVerticalHits {
		return false
	}
	return true
}

/* ApplySelection runs SelectEvent against result's own reconstructed vertex
 * and kept hits, writing the outcome back into result.KeepThisEvent. The
 * event itself is never discarded: every RecoResult that reaches this
 * function comes back out, just with the flag set. */
func ApplySelection(ctx *Context, pdg int, result RecoResult) RecoResult {
	result.KeepThisEvent = SelectEvent(ctx, pdg, result.RecoHelix.X0, result.KeptHits)
	return result
}

func pdgAllowed(pdg int, allowed []int) bool {
	for _, a := range allowed {
		if a == pdg {
			return true
		}
	}
	return false
}

/* fiducialOK checks vertex against the active-x window (centered, inset by
 * FiducialXInsetMM from each edge of the full FiducialActiveXMM span) and
 * the y half-height of whichever supermodule is nearest in z. */
func fiducialOK(g *Geometry, vertex Point3, cfg SelectionConfig) bool {
	halfX := cfg.FiducialActiveXMM/2 - cfg.FiducialXInsetMM
	if halfX < 0 || math.Abs(vertex.X) > halfX {
		return false
	}

	plane, err := g.nearestPlaneInZ(vertex.Z)
	if err != nil {
		return false
	}
	superModule, _, _, _ := DecodePlaneID(plane.ID)
	role, ok := superModuleRole[superModule/2]
	if !ok {
		return false
	}
	height, ok := cfg.SuperModuleYHeight[role]
	if !ok {
		return false
	}
	return math.Abs(vertex.Y) <= height/2
}

func countByOrientation(hits []WireHit) (horiz, vert int) {
	for _, h := range hits {
		if h.Horizontal {
			horiz++
		} else {
			vert++
		}
	}
	return horiz, vert
}
