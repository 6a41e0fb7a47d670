package sandtrack

import "errors"

/* sentinel errors returned across component boundaries. */
var (
	ErrNoActiveLayer     = errors.New("sandtrack: no active layer within search bound")
	ErrNoIntersection    = errors.New("sandtrack: trajectory does not intersect plane")
	ErrOutsideWire       = errors.New("sandtrack: projected point falls outside wire extent")
	ErrDegenerateFit     = errors.New("sandtrack: fit is degenerate (insufficient or collinear hits)")
	ErrFitNonConvergent  = errors.New("sandtrack: minimizer failed to converge")
	ErrUnknownCell       = errors.New("sandtrack: cell id not found in geometry")
	ErrUnknownPlane      = errors.New("sandtrack: plane id not found in geometry")
	ErrInvalidGeometry   = errors.New("sandtrack: invalid geometry configuration")
	ErrEmptyWireTable    = errors.New("sandtrack: wire info table is empty")
	ErrMalformedWireInfo = errors.New("sandtrack: malformed wire info record")
)
