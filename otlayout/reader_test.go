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

func TestNewTableReaderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	_, err := NewTableReader(ot.T("GDEF"), otbuild.LayoutWithLookups().Bytes(), testGlyphs, nil)
	assert.Error(t, err, "GDEF is not a layout table")
	//
	_, err = NewTableReader(ot.T("GSUB"), []byte{0, 1}, testGlyphs, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ot.ErrTruncated))
	//
	broken := otbuild.LayoutWithLookups(otbuild.Lookup(1, 0, otbuild.New().U16(3).Off16(otbuild.Coverage1(gA))))
	_, err = NewTableReader(ot.T("GSUB"), broken.Bytes(), testGlyphs, nil)
	var perr *ot.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "SingleSubst", perr.Section)
	assert.True(t, errors.Is(err, ot.ErrUnknownFormat))
}

func TestNullCoverageOffsetIsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	single := otbuild.New().U16(1).Off16(nil).S16(1)
	_, err := NewTableReader(ot.T("GSUB"), otbuild.LayoutWithLookups(otbuild.Lookup(1, 0, single)).Bytes(),
		testGlyphs, nil)
	var perr *ot.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "SingleSubst", perr.Section)
	assert.Contains(t, perr.Issue, "NULL offset")
	//
	context := otbuild.New().U16(3, 2, 0).Off16(otbuild.Coverage1(gA)).Off16(nil)
	_, err = NewTableReader(ot.T("GSUB"), otbuild.LayoutWithLookups(otbuild.Lookup(5, 0, context)).Bytes(),
		testGlyphs, nil)
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Issue, "NULL input coverage offset")
	//
	markBase := otbuild.New().U16(1).Off16(otbuild.Coverage1(gMark)).Off16(nil).U16(1).
		Off16(otbuild.New().U16(0)).Off16(otbuild.New().U16(0))
	_, err = NewTableReader(ot.T("GPOS"), otbuild.LayoutWithLookups(otbuild.Lookup(4, 0, markBase)).Bytes(),
		testGlyphs, nil)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "MarkBasePos", perr.Section)
}

func TestReaderGlyph(t *testing.T) {
	tr := newReader(t, "GSUB", testGDef())
	g := tr.Glyph(gMark)
	assert.True(t, g.IsMark())
	assert.Equal(t, "\u0300", g.Text())
	assert.False(t, tr.Glyph(gA).IsMark())
	unknown := tr.Glyph(999)
	assert.Equal(t, ot.GlyphIndex(999), unknown.Index())
	assert.Equal(t, 0, unknown.Width())
	assert.False(t, unknown.Unicode().IsSome())
}

func TestIsSkip(t *testing.T) {
	tr := newReader(t, "GSUB", testGDef())
	assert.True(t, tr.IsSkip(gA, ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS))
	assert.False(t, tr.IsSkip(gA, ot.LOOKUP_FLAG_IGNORE_MARKS))
	assert.True(t, tr.IsSkip(gLig, ot.LOOKUP_FLAG_IGNORE_LIGATURES))
	assert.True(t, tr.IsSkip(gMark, ot.LOOKUP_FLAG_IGNORE_MARKS))
	assert.False(t, tr.IsSkip(gMark, 0))
	assert.True(t, tr.IsSkip(gMark, 2<<8))
	assert.False(t, tr.IsSkip(gMark2, 2<<8))
	assert.False(t, tr.IsSkip(gA, 2<<8), "attachment type applies to marks only")
	//
	noGDef := newReader(t, "GSUB", nil)
	assert.False(t, noGDef.IsSkip(gMark, ot.LOOKUP_FLAG_IGNORE_MARKS))
	//
	// without glyph classes, glyphs with an attachment class are marks
	attachOnly := newReader(t, "GSUB", otbuild.GDef(nil,
		otbuild.ClassDefMap(map[uint16]uint16{gMark: 1, gMark2: 2})))
	assert.False(t, attachOnly.IsSkip(gA, 2<<8), "base glyphs are never filtered by attachment type")
	assert.True(t, attachOnly.IsSkip(gMark, 2<<8))
	assert.False(t, attachOnly.IsSkip(gMark2, 2<<8))
}

func TestGlyphIndexerSkipsIgnoredGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr := newReader(t, "GSUB", testGDef())
	flag := ot.LOOKUP_FLAG_IGNORE_MARKS
	line := makeLine(gA, gMark, gMark2, gB)
	gidx := GlyphIndexer{Line: line, Idx: 0}
	require.True(t, gidx.NextGlyph(tr, flag))
	assert.Equal(t, 3, gidx.Idx)
	assert.Equal(t, ot.GlyphIndex(gB), gidx.Glyph.Index())
	assert.False(t, gidx.NextGlyph(tr, flag), "end of window")
	//
	gidx = GlyphIndexer{Line: line, Idx: 3}
	require.True(t, gidx.PreviousGlyph(tr, flag))
	assert.Equal(t, 0, gidx.Idx)
	assert.False(t, gidx.PreviousGlyph(tr, flag))
	//
	line = makeLine(gA, gMark)
	gidx = GlyphIndexer{Line: line, Idx: 0}
	assert.False(t, gidx.NextGlyph(tr, flag), "only ignored glyphs follow")
	gidx = GlyphIndexer{Line: line, Idx: 0}
	assert.True(t, gidx.NextGlyph(tr, 0))
	assert.Equal(t, 1, gidx.Idx)
}

// featureTable builds a GSUB table with scripts latn (default and DEU) and
// DFLT, features liga → {2, 0} and smcp → {1}, and three single substitutions.
func featureTable() *otbuild.Node {
	langSys := func(required uint16, features ...uint16) *otbuild.Node {
		return otbuild.New().U16(0, required, uint16(len(features))).U16(features...)
	}
	latn := otbuild.New().Off16(langSys(0xFFFF, 0)).U16(1).
		Tag("DEU ").Off16(langSys(1, 0))
	dflt := otbuild.New().Off16(langSys(0xFFFF, 1)).U16(0)
	scripts := otbuild.New().U16(2).
		Tag("DFLT").Off16(dflt).
		Tag("latn").Off16(latn)
	features := otbuild.New().U16(2).
		Tag("liga").Off16(otbuild.New().U16(0, 2, 2, 0)).
		Tag("smcp").Off16(otbuild.New().U16(0, 1, 1))
	lookups := otbuild.LookupList(
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gA}, []uint16{gB})),
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gA, gB}, []uint16{gX, gY})),
		otbuild.Lookup(1, 0, singleFmt2([]uint16{gB}, []uint16{gC})),
	)
	return otbuild.Layout(scripts, features, lookups)
}

func TestFeatureLookups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tr, err := NewTableReader(ot.T("GSUB"), featureTable().Bytes(), testGlyphs, nil)
	require.NoError(t, err)
	assert.Equal(t, []ot.Tag{ot.T("DFLT"), ot.T("latn")}, tr.ScriptTags())
	require.Len(t, tr.Features(), 2)
	//
	latn, deu, grek := ot.T("latn"), ot.T("DEU "), ot.T("grek")
	liga, smcp := ot.T("liga"), ot.T("smcp")
	assert.Equal(t, []int{0, 2}, tr.FeatureLookups(latn, ot.T("dflt"), liga), "lookup list order")
	assert.Empty(t, tr.FeatureLookups(latn, ot.T("dflt"), smcp))
	assert.Equal(t, []int{1}, tr.FeatureLookups(latn, deu, smcp), "required feature")
	assert.Equal(t, []int{0, 2}, tr.FeatureLookups(latn, ot.T("TRK "), liga), "default language system")
	assert.Equal(t, []int{1}, tr.FeatureLookups(grek, ot.T("dflt"), smcp), "DFLT script")
	//
	line := makeLine(gA, gB)
	changed, err := tr.ApplyLookups(line, tr.FeatureLookups(latn, ot.T("dflt"), liga)...)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []ot.GlyphIndex{gC, gC}, lineIDs(line), "A → B → C, B → C")
	//
	_, err = tr.ApplyLookups(line, 5)
	assert.ErrorIs(t, err, ErrEngineFault)
}
