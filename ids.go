/*------------------------------------------------------------------------------
* ids.go : non-overlapping bit-packed identifiers for the geometry volume tree
*
* Plane and cell ids are packed into disjoint bit fields, so encode/decode
* is a pure, lossless round trip: no field shares digits with another, and
* two distinct planes can never alias onto the same id.
*-----------------------------------------------------------------------------*/
package sandtrack

const (
	superModuleBits = 8
	moduleBits      = 8
	planeLocalBits  = 11
	orientBits      = 1
	cellLocalBits   = 20

	superModuleShift = moduleBits + planeLocalBits + orientBits
	moduleShift      = planeLocalBits + orientBits
	planeLocalShift  = orientBits
	orientShift      = 0

	superModuleMask = (int64(1) << superModuleBits) - 1
	moduleMask      = (int64(1) << moduleBits) - 1
	planeLocalMask  = (int64(1) << planeLocalBits) - 1
	orientMask      = (int64(1) << orientBits) - 1
	cellLocalMask   = (int64(1) << cellLocalBits) - 1
)

/* EncodePlaneID packs the volume-tree coordinates of a plane into a single id.
 * superModule and module identify position in the tracker; planeLocal is the
 * plane's index within its module; orient is its wire orientation. */
func EncodePlaneID(superModule, module, planeLocal int, orient Orientation) int64 {
	return (int64(superModule&int(superModuleMask)) << superModuleShift) |
		(int64(module&int(moduleMask)) << moduleShift) |
		(int64(planeLocal&int(planeLocalMask)) << planeLocalShift) |
		(int64(orient) & orientMask)
}

/* DecodePlaneID reverses EncodePlaneID. */
func DecodePlaneID(id int64) (superModule, module, planeLocal int, orient Orientation) {
	superModule = int((id >> superModuleShift) & superModuleMask)
	module = int((id >> moduleShift) & moduleMask)
	planeLocal = int((id >> planeLocalShift) & planeLocalMask)
	orient = Orientation(id & orientMask)
	return
}

/* EncodeCellID packs a plane id and the cell's local index within that plane. */
func EncodeCellID(planeID int64, cellLocal int) int64 {
	return (planeID << cellLocalBits) | (int64(cellLocal) & cellLocalMask)
}

/* DecodeCellID reverses EncodeCellID. */
func DecodeCellID(id int64) (planeID int64, cellLocal int) {
	planeID = id >> cellLocalBits
	cellLocal = int(id & cellLocalMask)
	return
}

/* WireIDForCell derives the (1:1) wire id owned by a cell; wires and cells
 * share an id space since each cell owns exactly one wire. */
func WireIDForCell(cellID int64) int64 {
	return cellID
}
