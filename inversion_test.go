package sandtrack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sandtrack"
)

func longHorizontalWire(id int64, y, z float64) sandtrack.Wire {
	return sandtrack.Wire{
		ID:          id,
		P1:          sandtrack.Point3{X: -1500, Y: y, Z: z},
		P2:          sandtrack.Point3{X: 1500, Y: y, Z: z},
		Center:      sandtrack.Point3{X: 0, Y: y, Z: z},
		Length:      3000,
		Orientation: sandtrack.OrientHorizontal,
		Readout:     sandtrack.ReadoutFirst,
	}
}

func Test_InvertTDC_RecoversDriftTimeWithSignalPropagation(t *testing.T) {
	assert := assert.New(t)

	wire := longHorizontalWire(1, 0, 100)
	cell := sandtrack.Cell{ID: 1, Wire: wire, Width: 10, Depth: 10, VDrift: 0.05}
	cfg := sandtrack.DigitizerConfig{
		IncludeSignalPropagation: true,
		IncludeHitTime:           true,
		VSignal:                  200,
	}

	/* closest approach at x = +1000 on a 3000 mm wire read out at -1500:
	 * t_s = 2500/200 ns; drift radius 2 mm at 0.05 mm/ns gives t_d = 40 ns */
	const tDrift, tSignal, tHit = 40.0, 12.5, 5.0
	hit := sandtrack.WireHit{
		WireID:     1,
		Wire:       wire,
		Horizontal: true,
		TDC:        tDrift + tSignal + tHit,
	}
	line := sandtrack.Line2D{M: 0, Q: 1000}

	out := sandtrack.InvertTDC(hit, cell, line, sandtrack.Circle2D{}, nil, tHit, cfg)
	assert.InDelta(1000, out.MissingCoord, 1e-9)
	assert.InDelta(tSignal, out.TSignalMeasured, 1e-9)
	assert.InDelta(tDrift, out.TDriftMeasured, 1e-3)
	assert.InDelta(2.0, out.RMeasured, 1e-4)
}

func Test_InvertTDC_HorizontalNaNGuessFallsBackToWireCenter(t *testing.T) {
	assert := assert.New(t)

	wire := longHorizontalWire(1, 3, 100)
	cell := sandtrack.Cell{ID: 1, Wire: wire, VDrift: 0.05}
	cfg := sandtrack.DigitizerConfig{}

	hit := sandtrack.WireHit{WireID: 1, Wire: wire, Horizontal: true, TDC: 10}
	line := sandtrack.Line2D{M: math.NaN(), Q: 0}

	out := sandtrack.InvertTDC(hit, cell, line, sandtrack.Circle2D{}, nil, 0, cfg)
	assert.InDelta(wire.Center.Y, out.MissingCoord, 1e-9)
	assert.InDelta(10*0.05, out.RMeasured, 1e-9)
}

func Test_InvertTDC_NonSmearedTrackIgnoresSmearedTDC(t *testing.T) {
	assert := assert.New(t)

	wire := longHorizontalWire(1, 0, 100)
	cell := sandtrack.Cell{ID: 1, Wire: wire, VDrift: 0.05}
	cfg := sandtrack.DigitizerConfig{UseNonSmearedTrack: true}

	hit := sandtrack.WireHit{
		WireID:     1,
		Wire:       wire,
		Horizontal: true,
		TDrift:     20,
		TDC:        23.7, /* smeared */
	}
	out := sandtrack.InvertTDC(hit, cell, sandtrack.Line2D{}, sandtrack.Circle2D{}, nil, 0, cfg)
	assert.InDelta(20, out.TDriftMeasured, 1e-9)
}

func Test_InvertTDC_VerticalWirePicksIntersectionNearHorizontalNeighbor(t *testing.T) {
	assert := assert.New(t)

	wire := sandtrack.Wire{
		ID:          2,
		P1:          sandtrack.Point3{X: 5, Y: -1500, Z: 60},
		P2:          sandtrack.Point3{X: 5, Y: 1500, Z: 60},
		Center:      sandtrack.Point3{X: 5, Y: 0, Z: 60},
		Length:      3000,
		Orientation: sandtrack.OrientVertical,
		Readout:     sandtrack.ReadoutFirst,
	}
	cell := sandtrack.Cell{ID: 2, Wire: wire, VDrift: 0.05}
	cfg := sandtrack.DigitizerConfig{IncludeSignalPropagation: true, VSignal: 200}

	/* circle crosses z = 60 at y = +80 and y = -80; the fired horizontal
	 * wire nearby sits at y = 75, so the upper branch must win */
	circle := sandtrack.Circle2D{Center: sandtrack.Point2{X: 0, Y: 0}, R: 100}
	horizontal := []sandtrack.WireHit{{
		Wire:       longHorizontalWire(3, 75, 59),
		Horizontal: true,
	}}

	const tDrift = 10.0
	tSignal := (80.0 + 1500.0) / 200.0
	hit := sandtrack.WireHit{WireID: 2, Wire: wire, Horizontal: false, TDC: tDrift + tSignal}

	out := sandtrack.InvertTDC(hit, cell, sandtrack.Line2D{}, circle, horizontal, 0, cfg)
	assert.InDelta(80, out.MissingCoord, 1e-9)
	assert.InDelta(tSignal, out.TSignalMeasured, 1e-9)
	assert.InDelta(tDrift, out.TDriftMeasured, 1e-9)
}
