/*------------------------------------------------------------------------------
* volumetree.go : the external geometry loader's boundary types
*
* The volume tree itself (nested nodes with rotations, translations and
* parametric shapes) comes from an external loader; this file only fixes
* the shape of that boundary so geometry.go has something concrete to
* traverse. Shape is a tagged variant exposing a small capability set
* {kind, half-extents, contains?} over {box, trapezoid, tube,
* tube-segment}; the local-to-parent transform is carried by VolumeNode.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math"

/* Transform is a rigid rotation+translation from a node's local frame to
 * its parent's: a full 3x3 rotation matrix plus a translation vector.
 * Composition multiplies the rotation matrices (see Compose). */
type Transform struct {
	Rotation    [3][3]float64
	Translation Point3
}

/* Identity returns the no-op transform. */
func Identity() Transform {
	var t Transform
	t.Rotation[0][0] = 1
	t.Rotation[1][1] = 1
	t.Rotation[2][2] = 1
	return t
}

/* RotationZ returns a transform that rotates by angle radians about z and
 * translates by d, applied rotation-then-translation. */
func RotationZ(angle float64, d Point3) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	var t Transform
	t.Rotation[0][0], t.Rotation[0][1] = c, -s
	t.Rotation[1][0], t.Rotation[1][1] = s, c
	t.Rotation[2][2] = 1
	t.Translation = d
	return t
}

/* Apply maps a point from the transform's local frame into its parent's. */
func (t Transform) Apply(p Point3) Point3 {
	r := t.Rotation
	return Point3{
		X: r[0][0]*p.X + r[0][1]*p.Y + r[0][2]*p.Z + t.Translation.X,
		Y: r[1][0]*p.X + r[1][1]*p.Y + r[1][2]*p.Z + t.Translation.Y,
		Z: r[2][0]*p.X + r[2][1]*p.Y + r[2][2]*p.Z + t.Translation.Z,
	}
}

/* ApplyInverse maps a point from the transform's parent frame back into its
 * local frame; Rotation is assumed orthonormal, so its inverse is its
 * transpose. */
func (t Transform) ApplyInverse(p Point3) Point3 {
	q := p.Sub(t.Translation)
	r := t.Rotation
	return Point3{
		X: r[0][0]*q.X + r[1][0]*q.Y + r[2][0]*q.Z,
		Y: r[0][1]*q.X + r[1][1]*q.Y + r[2][1]*q.Z,
		Z: r[0][2]*q.X + r[1][2]*q.Y + r[2][2]*q.Z,
	}
}

/* Compose returns the transform that first applies t, then outer: mapping
 * a point in t's local frame all the way into outer's parent frame. */
func (outer Transform) Compose(t Transform) Transform {
	var out Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += outer.Rotation[i][k] * t.Rotation[k][j]
			}
			out.Rotation[i][j] = s
		}
	}
	rotated := Point3{
		X: outer.Rotation[0][0]*t.Translation.X + outer.Rotation[0][1]*t.Translation.Y + outer.Rotation[0][2]*t.Translation.Z,
		Y: outer.Rotation[1][0]*t.Translation.X + outer.Rotation[1][1]*t.Translation.Y + outer.Rotation[1][2]*t.Translation.Z,
		Z: outer.Rotation[2][0]*t.Translation.X + outer.Rotation[2][1]*t.Translation.Y + outer.Rotation[2][2]*t.Translation.Z,
	}
	out.Translation = rotated.Add(outer.Translation)
	return out
}

/* ShapeKind tags the polymorphic shape variant carried by a VolumeNode. */
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeTrapezoid
	ShapeTube
	ShapeTubeSegment
)

/* Shape is the capability set the geometry builder needs from any volume
 * shape: its bounding half-extents in its own local frame, and a
 * point-membership test. Box, Trapezoid, Tube and TubeSegment are the
 * four concrete kinds the loader produces. */
type Shape interface {
	Kind() ShapeKind
	HalfExtents() Point3
	Contains(local Point3) bool
}

/* Box is an axis-aligned rectangular prism, the shape of drift and straw
 * plane volumes. */
type Box struct {
	HalfX, HalfY, HalfZ float64
}

func (b Box) Kind() ShapeKind        { return ShapeBox }
func (b Box) HalfExtents() Point3    { return Point3{b.HalfX, b.HalfY, b.HalfZ} }
func (b Box) Contains(p Point3) bool {
	return math.Abs(p.X) <= b.HalfX && math.Abs(p.Y) <= b.HalfY && math.Abs(p.Z) <= b.HalfZ
}

/* Trapezoid is a box whose x half-extent varies linearly with y, used for
 * the tapered outer modules of the tracker. */
type Trapezoid struct {
	HalfXAtYMin, HalfXAtYMax, HalfY, HalfZ float64
}

func (t Trapezoid) Kind() ShapeKind { return ShapeTrapezoid }
func (t Trapezoid) HalfExtents() Point3 {
	hx := t.HalfXAtYMin
	if t.HalfXAtYMax > hx {
		hx = t.HalfXAtYMax
	}
	return Point3{hx, t.HalfY, t.HalfZ}
}
func (t Trapezoid) Contains(p Point3) bool {
	if math.Abs(p.Y) > t.HalfY || math.Abs(p.Z) > t.HalfZ {
		return false
	}
	frac := (p.Y + t.HalfY) / (2 * t.HalfY)
	hx := t.HalfXAtYMin + frac*(t.HalfXAtYMax-t.HalfXAtYMin)
	return math.Abs(p.X) <= hx
}

/* Tube is a hollow cylinder along z, the shape of a single straw. */
type Tube struct {
	RMin, RMax, HalfZ float64
}

func (t Tube) Kind() ShapeKind     { return ShapeTube }
func (t Tube) HalfExtents() Point3 { return Point3{t.RMax, t.RMax, t.HalfZ} }
func (t Tube) Contains(p Point3) bool {
	if math.Abs(p.Z) > t.HalfZ {
		return false
	}
	r := math.Hypot(p.X, p.Y)
	return r >= t.RMin && r <= t.RMax
}

/* TubeSegment is a Tube restricted to an angular wedge [PhiMin, PhiMax]. */
type TubeSegment struct {
	Tube
	PhiMin, PhiMax float64
}

func (t TubeSegment) Kind() ShapeKind { return ShapeTubeSegment }
func (t TubeSegment) Contains(p Point3) bool {
	if !t.Tube.Contains(p) {
		return false
	}
	phi := math.Atan2(p.Y, p.X)
	return phi >= t.PhiMin && phi <= t.PhiMax
}

/* VolumeNode is one node of the external volume tree: a named shape plus a
 * local-to-parent Transform and its children. The tree is built once by
 * the (out-of-scope) geometry loader and handed to Geometry.Build. */
type VolumeNode struct {
	Name     string
	Shape    Shape
	Local    Transform
	Children []*VolumeNode
}

/* Walk performs a depth-first traversal of the tree rooted at n, invoking
 * visit with each node and its accumulated world transform. Traversal stops
 * early if visit returns false for a node (children are still skipped, the
 * sibling subtree is not). */
func (n *VolumeNode) Walk(worldToParent Transform, visit func(node *VolumeNode, world Transform) (descend bool)) {
	if n == nil {
		return
	}
	world := worldToParent.Compose(n.Local)
	if !visit(n, world) {
		return
	}
	for _, child := range n.Children {
		child.Walk(world, visit)
	}
}
