package otglyph

import (
	"errors"
	"testing"

	"github.com/npillmayer/otglyph/internal/otbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Contains(t, f.Name, "Go")
	_, ok := f.Table(ot.T("head"))
	assert.True(t, ok, "font has a head table")
	line := f.LineForText("fin")
	require.Equal(t, 3, line.Len())
	assert.Equal(t, "fin", line.ToUnicodeText(0, 3))
	gid, ok := f.GlyphIndex('f')
	require.True(t, ok)
	assert.Equal(t, gid, line.Get(0).Index())
	assert.Greater(t, line.Get(0).Width(), 0)
}

func TestLineForTextNormalizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	f := FallbackFont()
	line := f.LineForText("e\u0301")
	require.Equal(t, 1, line.Len(), "e + combining acute is composed")
	gid, _ := f.GlyphIndex('\u00e9')
	assert.Equal(t, gid, line.Get(0).Index())
	assert.Equal(t, "\u00e9", line.Get(0).Text())
	//
	line = f.LineForText("\U0010FFFD")
	assert.Equal(t, ot.GlyphIndex(0), line.Get(0).Index(), "unmapped code-points yield .notdef")
	assert.Equal(t, "\U0010FFFD", line.Get(0).Text())
}

func TestParseFontErrors(t *testing.T) {
	_, err := ParseFont([]byte("not a font"))
	assert.Error(t, err)
	_, err = LoadFont("does-not-exist.otf")
	assert.Error(t, err)
}

// Glyphs of the synthetic font: f, i, the fi ligature, and a combining mark.
const (
	gF, gI, gFI, gMark = 1, 2, 3, 4
	markRune           = '\u0334' // has no canonical composition
)

func syntheticTables(t *testing.T) map[ot.Tag][]byte {
	t.Helper()
	script := func(feature uint16) *otbuild.Node {
		dflt := otbuild.New().U16(0, 0xFFFF, 1, feature)
		latn := otbuild.New().Off16(dflt).U16(0)
		return otbuild.New().U16(1).Tag("latn").Off16(latn)
	}
	features := func(tag string) *otbuild.Node {
		return otbuild.New().U16(1).Tag(tag).Off16(otbuild.New().U16(0, 1, 0))
	}
	ligSet := otbuild.New().U16(1).Off16(otbuild.New().U16(gFI, 2, gI))
	liga := otbuild.New().U16(1).Off16(otbuild.Coverage1(gF)).U16(1).Off16(ligSet)
	gsub := otbuild.Layout(script(0), features("liga"), otbuild.LookupList(
		otbuild.Lookup(4, uint16(ot.LOOKUP_FLAG_IGNORE_MARKS), liga)))
	//
	markArray := otbuild.New().U16(1).U16(0).Off16(otbuild.Anchor(0, 0))
	baseArray := otbuild.New().U16(2).Off16(otbuild.Anchor(100, 500)).Off16(otbuild.Anchor(250, 600))
	markBase := otbuild.New().U16(1).
		Off16(otbuild.Coverage1(gMark)).
		Off16(otbuild.Coverage1(gI, gFI)).
		U16(1).Off16(markArray).Off16(baseArray)
	gpos := otbuild.Layout(script(0), features("mark"), otbuild.LookupList(
		otbuild.Lookup(4, 0, markBase)))
	//
	gdef := otbuild.GDef(otbuild.ClassDefMap(map[uint16]uint16{gF: 1, gI: 1, gFI: 2, gMark: 3}), nil)
	font := otbuild.Font(map[string][]byte{
		"GSUB": gsub.Bytes(),
		"GPOS": gpos.Bytes(),
		"GDEF": gdef.Bytes(),
	})
	tables, err := ot.ParseTableDirectory(font)
	require.NoError(t, err)
	return tables
}

func syntheticFont(t *testing.T) *Font {
	t.Helper()
	glyphs := otlayout.GlyphMap{
		gF:    otlayout.NewGlyph(gF, 300, ot.Some('f')),
		gI:    otlayout.NewGlyph(gI, 250, ot.Some('i')),
		gFI:   otlayout.NewGlyph(gFI, 520, ot.None[rune]()),
		gMark: otlayout.NewGlyph(gMark, 0, ot.Some(rune(markRune))),
	}
	cmap := map[rune]ot.GlyphIndex{'f': gF, 'i': gI, markRune: gMark}
	f, err := NewFont("Synthetic", syntheticTables(t), glyphs, cmap)
	require.NoError(t, err)
	return f
}

func TestApplyFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	f := syntheticFont(t)
	require.NotNil(t, f.GSub())
	require.NotNil(t, f.GPos())
	require.NotNil(t, f.GDef())
	//
	line := f.LineForText("fi" + string(markRune))
	require.Equal(t, 3, line.Len())
	assert.True(t, line.Get(2).IsMark())
	//
	latn, dflt := ScriptTag(language.English), ot.T("dflt")
	err := f.ApplyFeatures(line, latn, dflt, ot.T("liga"), ot.T("mark"), ot.T("kern"))
	require.NoError(t, err)
	require.Equal(t, 2, line.Len())
	assert.Equal(t, ot.GlyphIndex(gFI), line.Get(0).Index())
	assert.Equal(t, "fi", line.Get(0).Text())
	mark := line.Get(1)
	x, y := mark.Placement()
	assert.Equal(t, -250, x)
	assert.Equal(t, -600, y)
	assert.Equal(t, -1, mark.AnchorDelta())
	assert.Equal(t, "fi"+string(markRune), line.ToUnicodeText(0, line.Len()))
}

func TestApplyFeaturesOtherScript(t *testing.T) {
	f := syntheticFont(t)
	line := f.LineForText("fi")
	err := f.ApplyFeatures(line, ScriptTag(language.Greek), ot.T("dflt"), ot.T("liga"))
	require.NoError(t, err)
	assert.Equal(t, 2, line.Len(), "no DFLT script, no ligature")
}

func TestNewFontWithBrokenTable(t *testing.T) {
	tables := map[ot.Tag][]byte{ot.T("GSUB"): {0, 1, 0}}
	_, err := NewFont("Broken", tables, nil, nil)
	var perr *ot.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ot.T("GSUB"), perr.Table)
}

func TestScriptAndLangTags(t *testing.T) {
	assert.Equal(t, ot.T("latn"), ScriptTag(language.English))
	assert.Equal(t, ot.T("grek"), ScriptTag(language.Greek))
	assert.Equal(t, ot.T("cyrl"), ScriptTag(language.Russian))
	assert.Equal(t, ot.T("kana"), ScriptTag(language.Japanese))
	assert.Equal(t, ot.T("dev2"), ScriptTag(language.Hindi))
	assert.Equal(t, ot.T("DFLT"), ScriptTag(language.Und))
	//
	assert.Equal(t, ot.T("DEU "), LangTag(language.German))
	assert.Equal(t, ot.T("ENG "), LangTag(language.AmericanEnglish))
	assert.Equal(t, ot.T("TRK "), LangTag(language.Turkish))
	assert.Equal(t, ot.T("dflt"), LangTag(language.Und))
}
