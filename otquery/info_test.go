package otquery

import (
	"testing"

	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/internal/otbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	font *otglyph.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("tyse.fonts").SetTraceLevel(tracing.LevelError)
	env.font = otglyph.FallbackFont()
	tracing.Select("tyse.fonts").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.font)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Contains(fam, "Go", "expected font family name 'Go'")
	full, ok := Name(env.font, sfnt.NameIDFull)
	env.True(ok)
	env.Contains(full, "Go")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.font)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint32(HeadMagic), h.MagicNumber, "expected OpenType head magic number")
	env.Equal(uint16(2048), h.UnitsPerEm)
	env.Less(h.XMin, h.XMax)
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.font)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.NotZero(m.VersionFixed, "expected maxp version to be set")
	env.Greater(int(m.NumGlyphs), 100)
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.font)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.Greater(int(m.Ascent), 0)
	env.Less(int(m.Descent), 0)
	env.Greater(int(m.MaxAdvance), 0)
}

func (env *InfoTestEnviron) TestMissingTables() {
	empty := TableMap{}
	_, ok := HeadInfo(empty)
	env.False(ok)
	_, ok = MaxPInfo(TableMap{ot.T("maxp"): {0, 1}})
	env.False(ok, "truncated maxp")
	env.Empty(NameInfo(empty))
	env.Empty(LayoutTables(empty))
}

func (env *InfoTestEnviron) TestFontSupportsScript() {
	langSys := func() *otbuild.Node { return otbuild.New().U16(0, 0xFFFF, 0) }
	latn := otbuild.New().Off16(langSys()).U16(1).Tag("DEU ").Off16(langSys())
	scripts := otbuild.New().U16(1).Tag("latn").Off16(latn)
	gsub := otbuild.Layout(scripts, otbuild.New().U16(0), otbuild.LookupList())
	tr, err := otlayout.NewTableReader(ot.T("GSUB"), gsub.Bytes(), otlayout.GlyphMap{}, nil)
	env.Require().NoError(err)
	//
	s, l := FontSupportsScript(tr, ot.T("latn"), ot.T("DEU"))
	env.Equal(ot.T("latn"), s)
	env.Equal(ot.T("DEU "), l)
	s, l = FontSupportsScript(tr, ot.T("latn"), ot.T("FRA"))
	env.Equal(ot.T("latn"), s)
	env.Equal(ot.T("dflt"), l)
	s, l = FontSupportsScript(tr, ot.T("grek"), ot.T("ELL"))
	env.Equal(otlayout.DFLT, s)
	env.Equal(ot.T("dflt"), l)
	s, _ = FontSupportsScript(nil, ot.T("latn"), ot.T("DEU"))
	env.Equal(otlayout.DFLT, s)
	//
	tables := TableMap{ot.T("GSUB"): gsub.Bytes()}
	env.Equal([]string{"GSUB"}, LayoutTables(tables))
}
