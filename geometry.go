/*------------------------------------------------------------------------------
* geometry.go : the detector geometry index
*
* Builds, from the raw volume tree (volumetree.go), the flat list of
* tracker planes, their cells and sense wires, and answers the spatial
* queries digitization and reconstruction need: which cell contains a
* point, which cells are
* adjacent across planes, and the nearest active layer along a direction.
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/katalvlaran/lvlath/core"
)

/* node-name patterns. The volume tree itself is an external loader
 * concern; these regexes only need to agree with whatever node-naming
 * convention that loader uses. Named groups: super-module role and
 * replica, module id and replica, orientation class (0/1/2, or the
 * string tags XX/hh reused by straw planes). */
var (
	driftPlaneRegex = regexp.MustCompile(`^(?P<role>A|B|C|X0|X1)(?P<smrep>[01])_module(?P<module>\d+)_(?P<modrep>\d+)_PlaneType(?P<orient>[012])$`)
	strawPlaneRegex = regexp.MustCompile(`^STT_module(?P<module>\d+)_(?P<modrep>\d+)_Plane(?P<orient>XX|hh|[12])$`)
)

var superModuleRoleCode = map[string]int{"A": 0, "B": 1, "C": 2, "X0": 3, "X1": 4}

/* strawOrientTag maps the straw plane's string orientation tag to the
 * numeric class used to index Config.Orientations; XX and hh are the two
 * straw stereo tags, mapped here to classes 1 and 2 so straw and
 * drift planes share one configuration table. */
var strawOrientTag = map[string]int{"1": 1, "2": 2, "XX": 1, "hh": 2}

func namedGroups(re *regexp.Regexp, s string) (map[string]string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		out[name] = m[i]
	}
	return out, true
}

/* Geometry is the immutable, query-only detector model produced by
 * Build. All reads are non-mutating: once constructed, Geometry is
 * safe to share across concurrent reconstructions. */
type Geometry struct {
	planes    []*TrackerPlane /* ordered by z ascending */
	byID      map[int64]*TrackerPlane
	cellIndex map[int64]cellLocation
	adjacency *core.Graph /* one vertex per cell id, one edge per adjacent pair */

	flatCells map[int64]*Cell /* populated only by BuildFromWireInfo */
}

type cellLocation struct {
	plane *TrackerPlane
	idx   int
}

/* Build performs a depth-first traversal of the volume tree: drift-plane
 * and straw-plane volumes are recognized by name and turned into
 * TrackerPlanes with synthetic or per-straw cells; everything else is
 * recursed into. */
func Build(root *VolumeNode, cfg *Config) (*Geometry, error) {
	g := &Geometry{
		byID:      make(map[int64]*TrackerPlane),
		cellIndex: make(map[int64]cellLocation),
		adjacency: core.NewGraph(),
	}

	var buildErr error
	root.Walk(Identity(), func(node *VolumeNode, world Transform) bool {
		if buildErr != nil {
			return false
		}
		if groups, ok := namedGroups(driftPlaneRegex, node.Name); ok {
			plane, err := buildDriftPlane(node, world, cfg, groups)
			if err != nil {
				buildErr = err
				return false
			}
			g.addPlane(plane)
			return false /* a plane volume has no plane children to descend into */
		}
		if groups, ok := namedGroups(strawPlaneRegex, node.Name); ok {
			plane, err := buildStrawPlane(node, world, cfg, groups)
			if err != nil {
				buildErr = err
				return false
			}
			g.addPlane(plane)
			return false
		}
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

	sort.Slice(g.planes, func(i, j int) bool { return g.planes[i].Position.Z < g.planes[j].Position.Z })
	for _, p := range g.planes {
		g.byID[p.ID] = p
		for idx := range p.cells {
			g.cellIndex[p.cells[idx].ID] = cellLocation{plane: p, idx: idx}
		}
	}

	if err := g.buildAdjacency(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Geometry) addPlane(p *TrackerPlane) {
	g.planes = append(g.planes, p)
}

/* Planes returns the z-ordered plane sequence. */
func (g *Geometry) Planes() []*TrackerPlane { return g.planes }

/* PlaneByID looks up a plane by its packed id. */
func (g *Geometry) PlaneByID(id int64) (*TrackerPlane, error) {
	p, ok := g.byID[id]
	if !ok {
		return nil, ErrUnknownPlane
	}
	return p, nil
}

/* CellByID looks up a cell by its packed id, anywhere in the geometry. */
func (g *Geometry) CellByID(id int64) (*Cell, error) {
	if g.flatCells != nil {
		c, ok := g.flatCells[id]
		if !ok {
			return nil, ErrUnknownCell
		}
		return c, nil
	}
	loc, ok := g.cellIndex[id]
	if !ok {
		return nil, ErrUnknownCell
	}
	return &loc.plane.cells[loc.idx], nil
}

/* BuildFromWireInfo constructs a minimal Geometry directly from a persisted
 * wire table (wireinfo.go), for offline cross-checking and for running
 * digitization/reconstruction without a volume tree. Each wire becomes
 * its own cell; width/depth come from whichever configured orientation
 * class's binary orientation (orientationFromAngle) matches the
 * wire's own, falling back to the lowest-numbered configured class. No plane
 * structure or adjacency is built: this path only needs CellByID. */
func BuildFromWireInfo(wires []Wire, cfg *Config) (*Geometry, error) {
	if len(wires) == 0 {
		return nil, ErrEmptyWireTable
	}
	g := &Geometry{flatCells: make(map[int64]*Cell, len(wires))}
	for _, w := range wires {
		oc, err := orientationConfigFor(cfg, w.Orientation)
		if err != nil {
			return nil, err
		}
		cell := &Cell{ID: w.ID, Wire: w, Width: oc.Spacing, Depth: oc.Spacing, VDrift: oc.VDrift}
		g.flatCells[w.ID] = cell
	}
	return g, nil
}

func orientationConfigFor(cfg *Config, orient Orientation) (OrientationConfig, error) {
	for _, class := range []int{0, 1, 2} {
		if oc, ok := cfg.Orientations[class]; ok && orientationFromAngle(oc.Angle) == orient {
			return oc, nil
		}
	}
	classes := make([]int, 0, len(cfg.Orientations))
	for class := range cfg.Orientations {
		classes = append(classes, class)
	}
	if len(classes) > 0 {
		sort.Ints(classes)
		return cfg.Orientations[classes[0]], nil
	}
	return OrientationConfig{}, fmt.Errorf("%w: no orientation class configured", ErrInvalidGeometry)
}

/*-------------------------------- plane build -------------------------------*/

func orientationFromAngle(angle float64) Orientation {
	a := math.Mod(math.Abs(angle), math.Pi)
	if a > math.Pi/2 {
		a = math.Pi - a
	}
	if a < math.Pi/4 {
		return OrientHorizontal
	}
	return OrientVertical
}

func rotateVector(v Point2, angle float64) Point2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

func buildDriftPlane(node *VolumeNode, world Transform, cfg *Config, groups map[string]string) (*TrackerPlane, error) {
	box, ok := node.Shape.(Box)
	if !ok {
		return nil, fmt.Errorf("%w: drift plane %q has non-box shape", ErrInvalidGeometry, node.Name)
	}
	orientClass := atoiMust(groups["orient"])
	oc, err := cfg.OrientationFor(orientClass)
	if err != nil {
		return nil, err
	}

	superModule := superModuleRoleCode[groups["role"]]*2 + atoiMust(groups["smrep"])
	module := atoiMust(groups["module"])*10 + atoiMust(groups["modrep"])
	orientBin := orientationFromAngle(oc.Angle)
	planeID := EncodePlaneID(superModule, module, orientClass, orientBin)

	plane := &TrackerPlane{
		ID:          planeID,
		LocalID:     orientClass,
		Position:    world.Apply(Point3{}),
		Dimension:   Point3{X: 2 * box.HalfX, Y: 2 * box.HalfY, Z: 2 * box.HalfZ},
		WireAngle:   oc.Angle,
		Orientation: orientBin,
	}

	halfX, halfY := box.HalfX, box.HalfY
	direction := rotateVector(Point2{X: 1}, oc.Angle)

	var cellLocal int
	for tpos := -halfY + oc.Offset; tpos <= halfY-oc.Offset+1e-9; tpos += oc.Spacing {
		localPoint := rotateVector(Point2{X: 0, Y: tpos}, oc.Angle)
		ends := lineRectIntersections(localPoint, direction, halfX, halfY)
		if len(ends) != 2 {
			continue
		}
		wire, ok := makeWire(plane, world, ends, EncodeCellID(planeID, cellLocal))
		if !ok || wire.Length <= oc.MinLength {
			continue
		}
		plane.appendCell(tpos, Cell{
			ID:     wire.ID,
			Wire:   wire,
			Width:  oc.Spacing,
			Depth:  box.HalfZ * 2,
			VDrift: oc.VDrift,
		})
		cellLocal++
	}
	if len(plane.cells) == 0 {
		return nil, fmt.Errorf("%w: drift plane %q produced zero cells", ErrInvalidGeometry, node.Name)
	}
	return plane, nil
}

func buildStrawPlane(node *VolumeNode, world Transform, cfg *Config, groups map[string]string) (*TrackerPlane, error) {
	box, ok := node.Shape.(Box)
	if !ok {
		return nil, fmt.Errorf("%w: straw plane %q has non-box shape", ErrInvalidGeometry, node.Name)
	}
	orientClass := strawOrientTag[groups["orient"]]
	oc, err := cfg.OrientationFor(orientClass)
	if err != nil {
		return nil, err
	}

	module := atoiMust(groups["module"])*10 + atoiMust(groups["modrep"])
	orientBin := orientationFromAngle(oc.Angle)
	planeID := EncodePlaneID(0, module, orientClass, orientBin)

	plane := &TrackerPlane{
		ID:          planeID,
		LocalID:     orientClass,
		Position:    world.Apply(Point3{}),
		Dimension:   Point3{X: 2 * box.HalfX, Y: 2 * box.HalfY, Z: 2 * box.HalfZ},
		WireAngle:   oc.Angle,
		Orientation: orientBin,
	}

	halfX, halfY := box.HalfX, box.HalfY
	direction := rotateVector(Point2{X: 1}, oc.Angle)

	var cellLocal int
	for _, straw := range node.Children {
		if _, ok := straw.Shape.(Tube); !ok {
			continue
		}
		strawWorld := world.Compose(straw.Local)
		center := strawWorld.Apply(Point3{})
		localCenter := Point2{X: center.X - plane.Position.X, Y: center.Y - plane.Position.Y}
		rotated := rotateVector(localCenter, -oc.Angle)
		localPoint := rotateVector(Point2{X: 0, Y: rotated.Y}, oc.Angle)

		ends := lineRectIntersections(localPoint, direction, halfX, halfY)
		if len(ends) != 2 {
			continue
		}
		wire, ok := makeWire(plane, world, ends, EncodeCellID(planeID, cellLocal))
		if !ok || wire.Length <= oc.MinLength {
			continue
		}
		plane.appendCell(rotated.Y, Cell{
			ID:     wire.ID,
			Wire:   wire,
			Width:  oc.Spacing,
			Depth:  box.HalfZ * 2,
			VDrift: oc.VDrift,
		})
		cellLocal++
	}
	if len(plane.cells) == 0 {
		return nil, fmt.Errorf("%w: straw plane %q produced zero cells", ErrInvalidGeometry, node.Name)
	}
	plane.sortByTransverse() /* straws are walked in child order, not transverse order */
	return plane, nil
}

/* sortByTransverse restores the Data Model invariant that a plane's
 * transverse coordinate is ascending, reordering cells alongside it so
 * CellAt's binary search stays correct. Cell ids are left as assigned. */
func (p *TrackerPlane) sortByTransverse() {
	idx := make([]int, len(p.cells))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return p.transverse[idx[i]] < p.transverse[idx[j]] })

	transverse := make([]float64, len(p.cells))
	cells := make([]Cell, len(p.cells))
	for newPos, oldPos := range idx {
		transverse[newPos] = p.transverse[oldPos]
		cells[newPos] = p.cells[oldPos]
	}
	p.transverse, p.cells = transverse, cells
}

func atoiMust(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

/* appendCell appends a cell and its transverse coordinate in call order; it
 * does not sort. Callers either append in ascending transverse order or
 * call sortByTransverse afterwards. */
func (p *TrackerPlane) appendCell(transverse float64, c Cell) {
	p.transverse = append(p.transverse, transverse)
	p.cells = append(p.cells, c)
}

func makeWire(plane *TrackerPlane, world Transform, localEnds []Point2, id int64) (Wire, bool) {
	if len(localEnds) != 2 {
		return Wire{}, false
	}
	p1 := world.Apply(Point3{X: localEnds[0].X, Y: localEnds[0].Y})
	p2 := world.Apply(Point3{X: localEnds[1].X, Y: localEnds[1].Y})
	center := Midpoint(p1, p2)
	length := p1.Dist(p2)
	readout := readoutEndTag(plane, localEnds)
	return Wire{
		ID:          id,
		P1:          p1,
		P2:          p2,
		Center:      center,
		Length:      length,
		Orientation: plane.Orientation,
		Readout:     readout,
	}, true
}

/* readoutEndTag picks the amplifier end: the endpoint whose local
 * coordinate equals the plane's corner coordinate (within 1 mm) is the
 * readout end; we compare against the local +x/+y corner so the tag is a
 * pure function of geometry, not of build order. */
func readoutEndTag(plane *TrackerPlane, localEnds []Point2) ReadoutEnd {
	halfX, halfY := plane.Dimension.X/2, plane.Dimension.Y/2
	isHighCorner := func(p Point2) bool {
		return math.Abs(p.X-halfX) < 1 || math.Abs(p.Y-halfY) < 1
	}
	if isHighCorner(localEnds[0]) {
		return ReadoutFirst
	}
	if isHighCorner(localEnds[1]) {
		return ReadoutSecond
	}
	return ReadoutUnknown
}

/*------------------------------ line-rectangle intersection -----------------*/

/* lineRectIntersections intersects the line through p with direction d
 * against the four edges of the axis-aligned rectangle
 * [-halfX,halfX]x[-halfY,halfY]. A segment is parameterised by s in [0,1];
 * the intersection is accepted iff the 2x2 parametric determinant is
 * non-degenerate (|det| >= 1e-9) and s in [0,1]. */
func lineRectIntersections(p, d Point2, halfX, halfY float64) []Point2 {
	type edge struct{ a, b Point2 }
	edges := [4]edge{
		{Point2{-halfX, -halfY}, Point2{halfX, -halfY}}, /* bottom */
		{Point2{-halfX, halfY}, Point2{halfX, halfY}},   /* top */
		{Point2{-halfX, -halfY}, Point2{-halfX, halfY}}, /* left */
		{Point2{halfX, -halfY}, Point2{halfX, halfY}},   /* right */
	}

	var out []Point2
	for _, e := range edges {
		ex := e.b.X - e.a.X
		ey := e.b.Y - e.a.Y
		det := -d.X*ey + d.Y*ex
		if math.Abs(det) < 1e-9 {
			continue
		}
		rx := e.a.X - p.X
		ry := e.a.Y - p.Y
		s := (d.X*ry - d.Y*rx) / det
		if s < 0 || s > 1 {
			continue
		}
		out = append(out, Point2{X: e.a.X + s*ex, Y: e.a.Y + s*ey})
	}
	return dedupPoints(out)
}

func dedupPoints(pts []Point2) []Point2 {
	var out []Point2
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Dist(q) < 1e-6 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

/*------------------------------ segment-to-segment distance -----------------*/

/* SegmentDistance returns the minimum Euclidean distance between segments
 * [p1,p2] and [q1,q2]; see ClosestPointsOnSegments for the full
 * construction. */
func SegmentDistance(p1, p2, q1, q2 Point3) float64 {
	_, _, dist := ClosestPointsOnSegments(p1, p2, q1, q2)
	return dist
}

/* ClosestPointsOnSegments is the standard closest-points-of-two-segments
 * construction: solve the 2x2 normal equations for the
 * unclamped parameters, clamp both to [0,1], and if clamping changed one,
 * re-project the other and re-clamp. Parallel segments fall through to
 * point-to-line. Returns the segment parameters s in [0,1] (along p1->p2)
 * and t in [0,1] (along q1->q2) of the closest pair, and their distance. */
func ClosestPointsOnSegments(p1, p2, q1, q2 Point3) (s, t, dist float64) {
	d1 := p2.Sub(p1)
	d2 := q2.Sub(q1)
	r := p1.Sub(q1)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	if a <= 1e-12 && e <= 1e-12 {
		return 0, 0, p1.Dist(q1)
	}
	if a <= 1e-12 {
		t = clamp(f/e, 0, 1)
		return 0, t, p1.Dist(q1.Add(d2.Scale(t)))
	}
	c := d1.Dot(r)
	if e <= 1e-12 {
		s = clamp(-c/a, 0, 1)
		return s, 0, p1.Add(d1.Scale(s)).Dist(q1)
	}

	b := d1.Dot(d2)
	den := a*e - b*b

	if den > 1e-12 {
		s = clamp((b*f-c*e)/den, 0, 1)
	} else {
		s = 0 /* parallel: point-to-line reduces to this branch below */
	}
	t = (b*s + f) / e

	if t < 0 {
		t = 0
		s = clamp(-c/a, 0, 1)
	} else if t > 1 {
		t = 1
		s = clamp((b-c)/a, 0, 1)
	}

	closestP := p1.Add(d1.Scale(s))
	closestQ := q1.Add(d2.Scale(t))
	return s, t, closestP.Dist(closestQ)
}

/*------------------------------ cell adjacency ------------------------------*/

/* buildAdjacency computes, for every cell in plane p and every cell in the
 * next up to three planes in z, the wire-to-wire segment distance; pairs
 * below the adjacency threshold are recorded symmetrically. The adjacency
 * relation is modeled as an undirected lvlath graph (one vertex per cell
 * id) so the shared, cyclic-looking cell references are represented as
 * edges, never as owning pointers. */
func (g *Geometry) buildAdjacency() error {
	for _, p := range g.planes {
		for c := range p.cells {
			cellID := fmt.Sprintf("%d", p.cells[c].ID)
			if err := g.adjacency.AddVertex(cellID); err != nil {
				return fmt.Errorf("sandtrack: adjacency graph: %w", err)
			}
		}
	}

	for i, p := range g.planes {
		threshold := math.Sqrt(p.cells[0].Width*p.cells[0].Width+p.cells[0].Depth*p.cells[0].Depth) + 0.1
		for j := i + 1; j < len(g.planes) && j <= i+3; j++ {
			next := g.planes[j]
			for a := range p.cells {
				for b := range next.cells {
					ca, cb := &p.cells[a], &next.cells[b]
					dist := SegmentDistance(ca.Wire.P1, ca.Wire.P2, cb.Wire.P1, cb.Wire.P2)
					if dist >= threshold {
						continue
					}
					idA := fmt.Sprintf("%d", ca.ID)
					idB := fmt.Sprintf("%d", cb.ID)
					if _, err := g.adjacency.AddEdge(idA, idB, 0); err != nil {
						return fmt.Errorf("sandtrack: adjacency graph: %w", err)
					}
				}
			}
		}
	}

	for _, p := range g.planes {
		for c := range p.cells {
			idStr := fmt.Sprintf("%d", p.cells[c].ID)
			neighborIDs, err := g.adjacency.NeighborIDs(idStr)
			if err != nil {
				return fmt.Errorf("sandtrack: adjacency lookup: %w", err)
			}
			adj := make([]int64, 0, len(neighborIDs))
			for _, nid := range neighborIDs {
				var id int64
				fmt.Sscanf(nid, "%d", &id)
				adj = append(adj, id)
			}
			p.cells[c].Adjacent = adj
		}
	}
	return nil
}

/* AdjacentCells returns the cells adjacent to cellID, resolved through the
 * geometry index (non-owning back-references, never owning pointers). */
func (g *Geometry) AdjacentCells(cellID int64) ([]*Cell, error) {
	c, err := g.CellByID(cellID)
	if err != nil {
		return nil, err
	}
	out := make([]*Cell, 0, len(c.Adjacent))
	for _, id := range c.Adjacent {
		cell, err := g.CellByID(id)
		if err != nil {
			continue
		}
		out = append(out, cell)
	}
	return out, nil
}

/*------------------------------ point-to-cell query -------------------------*/

/* CellAt returns the cell of plane p closest to the transverse projection
 * of world. It binary-searches the ordered transverse-coordinate map for
 * the lower bound, compares the point-to-wire distance in the rotated
 * (y,z) subspace against the adjacent map entry, and widens the search by
 * one step in each direction (clamped to map bounds) if both candidates
 * are farther than a half cell width. */
func (p *TrackerPlane) CellAt(world Point3) (*Cell, error) {
	if len(p.cells) == 0 {
		return nil, ErrUnknownCell
	}
	local := Point2{X: world.X - p.Position.X, Y: world.Y - p.Position.Y}
	rotated := rotateVector(local, -p.WireAngle)

	idx := sort.SearchFloat64s(p.transverse, rotated.Y)
	candidates := uniqueInts(clampInt(idx-1, 0, len(p.cells)-1), clampInt(idx, 0, len(p.cells)-1))

	distTo := func(i int) float64 {
		return math.Hypot(rotated.Y-p.transverse[i], world.Z-p.cells[i].Wire.Center.Z)
	}

	best, bestDist := bestCandidate(candidates, distTo)
	if bestDist > p.cells[best].Width/2 {
		wider := uniqueInts(clampInt(idx-2, 0, len(p.cells)-1), clampInt(idx+1, 0, len(p.cells)-1))
		wider = append(wider, candidates...)
		best, _ = bestCandidate(uniqueInts(wider...), distTo)
	}
	return &p.cells[best], nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func uniqueInts(vs ...int) []int {
	seen := make(map[int]bool, len(vs))
	out := make([]int, 0, len(vs))
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func bestCandidate(candidates []int, distTo func(int) float64) (int, float64) {
	best := candidates[0]
	bestDist := distTo(best)
	for _, c := range candidates[1:] {
		if d := distTo(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

/* GetCellAtPoint is the geometry-wide point-to-cell query: find
 * the plane nearest in z, then the cell within it. */
func (g *Geometry) GetCellAtPoint(world Point3) (*Cell, error) {
	plane, err := g.nearestPlaneInZ(world.Z)
	if err != nil {
		return nil, err
	}
	return plane.CellAt(world)
}

func (g *Geometry) nearestPlaneInZ(z float64) (*TrackerPlane, error) {
	if len(g.planes) == 0 {
		return nil, ErrUnknownPlane
	}
	idx := sort.Search(len(g.planes), func(i int) bool { return g.planes[i].Position.Z >= z })
	if idx == 0 {
		return g.planes[0], nil
	}
	if idx == len(g.planes) {
		return g.planes[len(g.planes)-1], nil
	}
	if g.planes[idx].Position.Z-z < z-g.planes[idx-1].Position.Z {
		return g.planes[idx], nil
	}
	return g.planes[idx-1], nil
}

/*------------------------------ nearest active layer ------------------------*/

/* FindNextActiveLayer searches up to 3 steps of stepMM along direction dir
 * from point for a plane's active volume, returning ErrNoActiveLayer if
 * none is found. The search is a bounded loop in one direction only; it
 * never inverts the direction, and a miss is a typed error rather than
 * undefined behaviour. A point in a frame between modules therefore
 * reports not-found. */
func (g *Geometry) FindNextActiveLayer(point Point3, dir Point3, stepMM float64) (*TrackerPlane, error) {
	n := dir.Norm()
	if n == 0 {
		return nil, ErrNoActiveLayer
	}
	unit := dir.Scale(1 / n)
	cur := point
	for step := 0; step < 3; step++ {
		cur = cur.Add(unit.Scale(stepMM))
		if plane, err := g.nearestPlaneInZ(cur.Z); err == nil {
			if math.Abs(plane.Position.Z-cur.Z) <= plane.Dimension.Z/2 {
				return plane, nil
			}
		}
	}
	return nil, ErrNoActiveLayer
}
