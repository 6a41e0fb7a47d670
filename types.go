/*------------------------------------------------------------------------------
* types.go : core data model for the drift-chamber track reconstruction core
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math"

/* physical constants (frozen) ------------------------------------------------*/
const (
	MagneticFieldT  float64 = 0.6         /* solenoid field (T) */
	SpeedOfLight    float64 = 299.792458  /* mm/ns */
	CellHalfDiagFac float64 = math.Sqrt2  /* half-diagonal / (width/2) when depth equals width; Cell.HalfDiagonal uses the actual width and depth */
)

/* PerpMomentumFromRadius converts a circle radius (m) to transverse momentum (GeV). */
func PerpMomentumFromRadius(radiusM float64) float64 {
	return 0.3 * MagneticFieldT * radiusM
}

/* RadiusFromPerpMomentum is the inverse of PerpMomentumFromRadius. */
func RadiusFromPerpMomentum(perpGeV float64) float64 {
	return perpGeV / (0.3 * MagneticFieldT)
}

/* Point2 is a cartesian point in a 2D projection (mm). */
type Point2 struct {
	X, Y float64
}

func (p Point2) Sub(q Point2) Point2    { return Point2{p.X - q.X, p.Y - q.Y} }
func (p Point2) Add(q Point2) Point2    { return Point2{p.X + q.X, p.Y + q.Y} }
func (p Point2) Scale(s float64) Point2 { return Point2{p.X * s, p.Y * s} }
func (p Point2) Dot(q Point2) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point2) Norm() float64          { return math.Sqrt(p.Dot(p)) }
func (p Point2) Dist(q Point2) float64  { return p.Sub(q).Norm() }

/* Point3 is a cartesian point in the world frame (mm). */
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) Sub(q Point3) Point3    { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point3) Add(q Point3) Point3    { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point3) Scale(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }
func (p Point3) Dot(q Point3) float64   { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }
func (p Point3) Norm() float64          { return math.Sqrt(p.Dot(p)) }
func (p Point3) Dist(q Point3) float64  { return p.Sub(q).Norm() }

/* Midpoint returns the point halfway between p and q. */
func Midpoint(p, q Point3) Point3 {
	return Point3{(p.X + q.X) / 2, (p.Y + q.Y) / 2, (p.Z + q.Z) / 2}
}

/* Orientation identifies the wire direction class of a plane. */
type Orientation int

const (
	OrientHorizontal Orientation = 0 /* wires run along x, sensitive to y */
	OrientVertical   Orientation = 1 /* wires run along y, sensitive to x */
)

func (o Orientation) String() string {
	if o == OrientVertical {
		return "vertical"
	}
	return "horizontal"
}

/* ReadoutEnd tags which endpoint of a wire carries the amplifier. */
type ReadoutEnd int

const (
	ReadoutUnknown ReadoutEnd = iota
	ReadoutFirst
	ReadoutSecond
)

/* Wire is a sense wire, owned by its Cell. */
type Wire struct {
	ID          int64
	P1, P2      Point3 /* endpoints in the world frame */
	Center      Point3
	Length      float64
	Orientation Orientation
	Readout     ReadoutEnd
}

/* Direction returns the unit vector from P1 to P2. */
func (w Wire) Direction() Point3 {
	d := w.P2.Sub(w.P1)
	n := d.Norm()
	if n == 0 {
		return Point3{}
	}
	return d.Scale(1 / n)
}

/* PointAt returns the world point at arc-length parameter t measured from the center. */
func (w Wire) PointAt(t float64) Point3 {
	return w.Center.Add(w.Direction().Scale(t))
}

/* ReadoutPoint returns the endpoint tagged as the readout end. */
func (w Wire) ReadoutPoint() Point3 {
	if w.Readout == ReadoutSecond {
		return w.P2
	}
	return w.P1
}

/* Cell is the fiducial drift region around one sense wire. */
type Cell struct {
	ID       int64
	Wire     Wire
	Width    float64 /* transverse cell size (mm) */
	Depth    float64 /* along-beam cell size (mm) */
	VDrift   float64 /* mm/ns */
	Adjacent []int64 /* adjacent cell ids, symmetric */
}

/* HalfDiagonal is half the diagonal of the cell's transverse cross-section. */
func (c Cell) HalfDiagonal() float64 {
	return math.Hypot(c.Width, c.Depth) / 2
}

/* TrackerPlane is a flat arrangement of parallel wires sharing an orientation. */
type TrackerPlane struct {
	ID          int64
	LocalID     int
	Position    Point3  /* plane center, world frame */
	Dimension   Point3  /* half-extents doubled: full width/height/thickness */
	WireAngle   float64 /* rotation of wires about z, radians */
	Orientation Orientation

	transverse []float64 /* sorted ascending transverse coordinates */
	cells      []Cell    /* parallel to transverse, same order */
}

/* Cells returns the plane's cells in ascending transverse order. */
func (p *TrackerPlane) Cells() []Cell { return p.cells }

/* NumCells reports how many cells the plane holds. */
func (p *TrackerPlane) NumCells() int { return len(p.cells) }

/* Helix is a charged-particle trajectory in a uniform axial field. */
type Helix struct {
	R      float64 /* radius, m */
	Dip    float64 /* dip angle, rad */
	Phi0   float64 /* azimuth of the starting point */
	H      int     /* helicity, +1 or -1 */
	X0     Point3  /* origin */
	LowLim float64 /* arc-length window, optional */
	UpLim  float64
	hasLim bool
}

/* NewHelix builds a Helix with no arc-length restriction. */
func NewHelix(r, dip, phi0 float64, h int, x0 Point3) Helix {
	return Helix{R: r, Dip: dip, Phi0: phi0, H: h, X0: x0}
}

/* WithLimits returns a copy of h restricted to the arc-length window [lo, hi]. */
func (h Helix) WithLimits(lo, hi float64) Helix {
	h.LowLim, h.UpLim, h.hasLim = lo, hi, true
	return h
}

/* HasLimits reports whether the helix has been restricted to an arc-length window. */
func (h Helix) HasLimits() bool { return h.hasLim }

func (h Helix) xAt(s float64) float64 {
	return h.X0.X + s*math.Sin(h.Dip)
}
func (h Helix) yAt(s float64) float64 {
	return h.X0.Y + h.R*1000*(math.Sin(h.Phi0+float64(h.H)*s*math.Cos(h.Dip)/(h.R*1000)) - math.Sin(h.Phi0))
}
func (h Helix) zAt(s float64) float64 {
	return h.X0.Z + h.R*1000*(math.Cos(h.Phi0+float64(h.H)*s*math.Cos(h.Dip)/(h.R*1000)) - math.Cos(h.Phi0))
}

/* PointAt evaluates the helix at arc-length s (s in mm, R stored in m; internally R is used in mm). */
func (h Helix) PointAt(s float64) Point3 {
	return Point3{h.xAt(s), h.yAt(s), h.zAt(s)}
}

/* PhiFromZ inverts z_h(s) for the azimuth angle at a given z. */
func (h Helix) PhiFromZ(z float64) float64 {
	arg := (z-h.X0.Z)/(h.R*1000) + math.Cos(h.Phi0)
	return math.Acos(clamp(arg, -1, 1)) - h.Phi0
}

/* SFromPhi converts an azimuth angle back to the arc-length parameter. */
func (h Helix) SFromPhi(phi float64) float64 {
	return phi * h.R * 1000 / float64(h.H) / math.Cos(h.Dip)
}

/* RangeFromZWindow sets the arc-length window corresponding to a z half-width delta around z0. */
func (h Helix) RangeFromZWindow(z0, delta float64) Helix {
	zMin, zMax := z0-delta, z0+delta
	phiMin := h.PhiFromZ(zMax)
	phiMax := h.PhiFromZ(zMin)
	return h.WithLimits(h.SFromPhi(phiMin), h.SFromPhi(phiMax))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

/* Circle2D is a circle in the (Z,Y) bending-plane projection. */
type Circle2D struct {
	Center Point2
	R      float64
}

/* Distance returns the unsigned distance from p to the circle's circumference. */
func (c Circle2D) Distance(p Point2) float64 {
	return math.Abs(c.Center.Dist(p) - c.R)
}

/* Intersections returns the (up to two) y-values where the circle crosses a vertical
 * line z = zLine, i.e. the upper and lower semicircle evaluated at zLine. NaN if no
 * intersection exists. */
func (c Circle2D) Intersections(zLine float64) (yUpper, yLower float64) {
	dz := zLine - c.Center.X
	rad := c.R*c.R - dz*dz
	if rad < 0 {
		return math.NaN(), math.NaN()
	}
	h := math.Sqrt(rad)
	return c.Center.Y + h, c.Center.Y - h
}

/* TangentAt returns the unit tangent direction to the circle at point p (assumed on the circle). */
func (c Circle2D) TangentAt(p Point2) Point2 {
	r := p.Sub(c.Center)
	n := r.Norm()
	if n == 0 {
		return Point2{}
	}
	/* tangent is perpendicular to the radius vector */
	return Point2{-r.Y / n, r.X / n}
}

/* Line2D is a line x = m*z + q in the (Z,X) non-bending-plane projection. */
type Line2D struct {
	M, Q float64
}

/* Eval returns x at the given z. */
func (l Line2D) Eval(z float64) float64 { return l.M*z + l.Q }

/* Distance returns the unsigned 2D point-to-line distance, p given as (z, x). */
func (l Line2D) Distance(p Point2) float64 {
	/* line: m*z - x + q = 0 */
	return math.Abs(l.M*p.X-p.Y+l.Q) / math.Hypot(l.M, 1)
}

/* FitStatus reports the outcome of a nonlinear minimization. */
type FitStatus int

const (
	FitOK FitStatus = iota
	FitNonConvergent
	FitDegenerate
)

func (s FitStatus) String() string {
	switch s {
	case FitOK:
		return "ok"
	case FitNonConvergent:
		return "non-convergent"
	case FitDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

/* FitParameter is one named parameter in a fit result table. */
type FitParameter struct {
	Name    string
	Initial float64
	Value   float64
	Error   float64
}

/* FitResult carries the diagnostics of one nonlinear least-squares fit. */
type FitResult struct {
	Name       string
	Status     FitStatus
	Iterations int
	Objective  float64
	Parameters []FitParameter
}

/* WireHit is one fired wire, carrying both truth-level and measured timing. */
type WireHit struct {
	WireID      int64
	Wire        Wire
	Horizontal  bool
	TDrift      float64
	TSignal     float64
	THit        float64
	TDC         float64
	ContribHits []int

	/* filled during reconstruction */
	THitMeasured    float64
	TSignalMeasured float64
	TDriftMeasured  float64
	MissingCoord    float64
	RMeasured       float64
}

/* RecoResult is the reconstruction output for one event. */
type RecoResult struct {
	KeepThisEvent bool
	FitZY         FitResult
	FitXZ         FitResult
	TrueHelix     *Helix
	RecoHelix     Helix
	MomentumTrue  Point3
	MomentumReco  Point3
	KeptHits      []WireHit
}
