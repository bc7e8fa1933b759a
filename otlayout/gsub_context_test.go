package otlayout

import (
	"errors"
	"testing"

	"github.com/npillmayer/otglyph/internal/otbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyLookup(t *testing.T, tr *TableReader, lookup int, line *GlyphLine) bool {
	t.Helper()
	changed, err := mustLookup(t, tr, lookup).TransformLine(line)
	require.NoError(t, err)
	assert.Equal(t, line.End, line.Idx)
	return changed
}

func TestContextFormat1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gB}, []uint16{gY})),
		otbuild.Lookup(5, 0, contextFmt1(gA, []uint16{gB, gC}, action{1, 0})),
	)
	line := makeLine(gA, gB, gC, gD, gB)
	assert.True(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gY, gC, gD, gB}, lineIDs(line),
		"only the B within context is substituted")
	//
	line = makeLine(gA, gB, gD)
	assert.False(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gB, gD}, lineIDs(line))
	//
	line = makeLine(gA, gB)
	assert.False(t, applyLookup(t, tr, 1, line), "context exceeds line")
}

func TestContextFormat2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	classes := map[uint16]uint16{gA: 1, gE: 1, gB: 2, gC: 3, gD: 3}
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gC, gD}, []uint16{gY, gZ})),
		otbuild.Lookup(5, 0, contextFmt2([]uint16{gA, gE}, classes, 1, []uint16{2, 3}, action{2, 0})),
	)
	line := makeLine(gE, gB, gD, gA, gB, gC, gB)
	assert.True(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gE, gB, gZ, gA, gB, gY, gB}, lineIDs(line))
	//
	line = makeLine(gA, gC, gB)
	assert.False(t, applyLookup(t, tr, 1, line), "classes in wrong order")
}

func TestContextFormat3(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gA, gE}, []uint16{gX, gY})),
		otbuild.Lookup(5, 0, contextFmt3([][]uint16{{gA, gE}, {gB}, {gC, gD}}, action{0, 0})),
	)
	line := makeLine(gE, gB, gD, gE)
	assert.True(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gY, gB, gD, gE}, lineIDs(line))
}

func TestContextWithLigatureShrinksLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(4, 0, ligatureSubtable(gB, lig{glyph: gLig, components: []uint16{gC}})),
		otbuild.Lookup(5, 0, contextFmt1(gA, []uint16{gB, gC, gD}, action{1, 0})),
	)
	line := makeLine(gA, gB, gC, gD, gE)
	assert.True(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gLig, gD, gE}, lineIDs(line))
	assert.Equal(t, 4, line.End)
	assert.Equal(t, "bc", line.Get(1).Text())
}

func TestContextWithMultipleActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(1, 0, singleFmt1(23, gA)),
		otbuild.Lookup(2, 0, sequenceSubst(gC, gD, gE)),
		otbuild.Lookup(5, 0, contextFmt1(gA, []uint16{gB, gC}, action{0, 0}, action{2, 1})),
	)
	line := makeLine(gA, gB, gC, gA)
	assert.True(t, applyLookup(t, tr, 2, line))
	assert.Equal(t, []ot.GlyphIndex{gX, gB, gD, gE, gA}, lineIDs(line))
	assert.Equal(t, 5, line.End)
}

func TestContextSkipsMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	flag := uint16(ot.LOOKUP_FLAG_IGNORE_MARKS)
	tr := newReader(t, "GSUB", testGDef(),
		otbuild.Lookup(1, flag, singleFmt2([]uint16{gB}, []uint16{gY})),
		otbuild.Lookup(5, flag, contextFmt1(gA, []uint16{gB}, action{1, 0})),
	)
	line := makeLine(gA, gMark, gB)
	assert.True(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gMark, gY}, lineIDs(line))
}

func TestContextActionReferencesMissingLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(5, 0, contextFmt1(gA, []uint16{gB}, action{1, 9})),
	)
	line := makeLine(gA, gB, gC)
	_, err := mustLookup(t, tr, 0).TransformLine(line)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngineFault))
	var fault *EngineFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 9, fault.LookupIndex)
	assert.Equal(t, 3, line.End, "window is restored")
	//
	_, err = tr.ResolveLookup(-1)
	assert.ErrorIs(t, err, ErrEngineFault)
}

func TestSelfReferencingContextTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(5, 0, contextFmt1(gA, nil, action{0, 0})),
	)
	line := makeLine(gA, gA, gB)
	assert.False(t, applyLookup(t, tr, 0, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gA, gB}, lineIDs(line))
	assert.Equal(t, 0, line.Start)
	assert.Equal(t, 3, line.End)
}

func TestActionBeyondContextIsIgnored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", nil,
		otbuild.Lookup(1, 0, singleFmt1(1, gC)),
		otbuild.Lookup(5, 0, contextFmt1(gA, []uint16{gB}, action{2, 0})),
	)
	line := makeLine(gA, gB, gC)
	assert.False(t, applyLookup(t, tr, 1, line))
	assert.Equal(t, []ot.GlyphIndex{gA, gB, gC}, lineIDs(line))
}
