package sandtrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandtrack"
)

func makeHits(nHoriz, nVert int) []sandtrack.WireHit {
	hits := make([]sandtrack.WireHit, 0, nHoriz+nVert)
	for i := 0; i < nHoriz; i++ {
		hits = append(hits, sandtrack.WireHit{Horizontal: true})
	}
	for i := 0; i < nVert; i++ {
		hits = append(hits, sandtrack.WireHit{Horizontal: false})
	}
	return hits
}

func Test_SelectEvent_KeepsValidMuonTrack(t *testing.T) {
	assert := assert.New(t)
	g, cfg := twoPlaneGeometry(t)
	ctx := sandtrack.NewContext(g, cfg, 1)
	vertex := sandtrack.Point3{X: 0, Y: 0, Z: 10}
	assert.True(sandtrack.SelectEvent(ctx, 13, vertex, makeHits(5, 5)))
}

func Test_SelectEvent_RejectsWrongSpecies(t *testing.T) {
	assert := assert.New(t)
	g, cfg := twoPlaneGeometry(t)
	ctx := sandtrack.NewContext(g, cfg, 1)
	vertex := sandtrack.Point3{X: 0, Y: 0, Z: 10}
	assert.False(sandtrack.SelectEvent(ctx, 211, vertex, makeHits(5, 5)))
}

func Test_SelectEvent_RejectsOutsideFiducialVolume(t *testing.T) {
	assert := assert.New(t)
	g, cfg := twoPlaneGeometry(t)
	ctx := sandtrack.NewContext(g, cfg, 1)
	vertex := sandtrack.Point3{X: 0, Y: 5000, Z: 10}
	assert.False(sandtrack.SelectEvent(ctx, 13, vertex, makeHits(5, 5)))
}

func Test_SelectEvent_RejectsTooFewHits(t *testing.T) {
	assert := assert.New(t)
	g, cfg := twoPlaneGeometry(t)
	ctx := sandtrack.NewContext(g, cfg, 1)
	vertex := sandtrack.Point3{X: 0, Y: 0, Z: 10}
	assert.False(sandtrack.SelectEvent(ctx, 13, vertex, makeHits(2, 5)))
}

func Test_ApplySelection_NeverDropsTheEvent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, cfg := twoPlaneGeometry(t)
	ctx := sandtrack.NewContext(g, cfg, 1)

	result := sandtrack.RecoResult{
		RecoHelix: sandtrack.NewHelix(1, 0, 0, 1, sandtrack.Point3{X: 0, Y: 5000, Z: 10}),
		KeptHits:  makeHits(5, 5),
	}
	out := sandtrack.ApplySelection(ctx, 13, result)
	require.False(out.KeepThisEvent)
	assert.Equal(10, len(out.KeptHits))
}
