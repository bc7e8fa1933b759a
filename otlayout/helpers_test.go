package otlayout

import (
	"testing"

	"github.com/npillmayer/otglyph/internal/otbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/stretchr/testify/require"
)

// Glyphs of the synthetic test font:
//
//	1…26    'a'…'z'
//	40…49   ligatures, no Unicode code-point
//	50…59   combining marks U+0300…
const (
	gA, gB, gC, gD, gE = 1, 2, 3, 4, 5
	gX, gY, gZ         = 24, 25, 26
	gLig               = 40
	gMark, gMark2      = 50, 51
)

var testGlyphs = func() GlyphMap {
	m := GlyphMap{}
	for i := 1; i <= 26; i++ {
		m[ot.GlyphIndex(i)] = NewGlyph(ot.GlyphIndex(i), 500, ot.Some(rune('a'+i-1)))
	}
	for i := 40; i < 50; i++ {
		m[ot.GlyphIndex(i)] = NewGlyph(ot.GlyphIndex(i), 800, ot.None[rune]())
	}
	for i := 50; i < 60; i++ {
		m[ot.GlyphIndex(i)] = NewGlyph(ot.GlyphIndex(i), 0, ot.Some(rune(0x300+i-50)))
	}
	return m
}()

// testGDef classifies 40…49 as ligatures and 50…59 as marks. Glyph 51 has mark
// attachment class 2, all other marks class 1.
func testGDef() *otbuild.Node {
	classes := map[uint16]uint16{}
	attach := map[uint16]uint16{}
	for i := uint16(1); i <= 26; i++ {
		classes[i] = 1
	}
	for i := uint16(40); i < 50; i++ {
		classes[i] = 2
	}
	for i := uint16(50); i < 60; i++ {
		classes[i] = 3
		attach[i] = 1
	}
	attach[gMark2] = 2
	return otbuild.GDef(otbuild.ClassDefMap(classes), otbuild.ClassDefMap(attach))
}

func newReader(t *testing.T, tag string, gdef *otbuild.Node, lookups ...*otbuild.Node) *TableReader {
	t.Helper()
	var g *ot.GDef
	if gdef != nil {
		var err error
		g, err = ot.ParseGDef(ot.NewSource(ot.T("GDEF"), gdef.Bytes()))
		require.NoError(t, err)
	}
	tr, err := NewTableReader(ot.T(tag), otbuild.LayoutWithLookups(lookups...).Bytes(), testGlyphs, g)
	require.NoError(t, err)
	return tr
}

func makeLine(ids ...ot.GlyphIndex) *GlyphLine {
	glyphs := make([]Glyph, len(ids))
	for i, id := range ids {
		glyphs[i] = testGlyphs[id]
	}
	return NewGlyphLine(glyphs)
}

// makeTextLine is like makeLine, with every glyph standing for its default
// code-point explicitly, as for a line created from text.
func makeTextLine(ids ...ot.GlyphIndex) *GlyphLine {
	line := makeLine(ids...)
	for i, g := range line.glyphs {
		if t := g.Text(); t != "" {
			line.glyphs[i] = g.WithChars(t)
		}
	}
	return line
}

func lineIDs(line *GlyphLine) []ot.GlyphIndex {
	ids := make([]ot.GlyphIndex, 0, line.Len())
	for _, g := range line.Glyphs() {
		ids = append(ids, g.Index())
	}
	return ids
}

func mustLookup(t *testing.T, tr *TableReader, index int) *LookupTable {
	t.Helper()
	lookup, err := tr.ResolveLookup(index)
	require.NoError(t, err)
	return lookup
}

// --- Subtable builders -----------------------------------------------------

func singleFmt1(delta int16, covered ...uint16) *otbuild.Node {
	return otbuild.New().U16(1).Off16(otbuild.Coverage1(covered...)).S16(delta)
}

func singleFmt2(covered []uint16, substitutes []uint16) *otbuild.Node {
	return otbuild.New().U16(2).Off16(otbuild.Coverage1(covered...)).
		U16(uint16(len(substitutes))).U16(substitutes...)
}

// sequenceSubst builds a MultipleSubst or AlternateSubst subtable for a single glyph.
func sequenceSubst(covered uint16, seq ...uint16) *otbuild.Node {
	return otbuild.New().U16(1).Off16(otbuild.Coverage1(covered)).U16(1).
		Off16(otbuild.New().U16(uint16(len(seq))).U16(seq...))
}

type lig struct {
	glyph      uint16
	components []uint16
}

func ligatureSubtable(first uint16, ligs ...lig) *otbuild.Node {
	set := otbuild.New().U16(uint16(len(ligs)))
	for _, l := range ligs {
		set.Off16(otbuild.New().U16(l.glyph, uint16(len(l.components)+1)).U16(l.components...))
	}
	return otbuild.New().U16(1).Off16(otbuild.Coverage1(first)).U16(1).Off16(set)
}

type action struct {
	sequenceIndex, lookupIndex uint16
}

func sequenceRule(input []uint16, actions ...action) *otbuild.Node {
	rule := otbuild.New().U16(uint16(len(input)+1), uint16(len(actions))).U16(input...)
	for _, a := range actions {
		rule.U16(a.sequenceIndex, a.lookupIndex)
	}
	return rule
}

func contextFmt1(first uint16, input []uint16, actions ...action) *otbuild.Node {
	ruleSet := otbuild.New().U16(1).Off16(sequenceRule(input, actions...))
	return otbuild.New().U16(1).Off16(otbuild.Coverage1(first)).U16(1).Off16(ruleSet)
}

// contextFmt2 builds a class-based context with a single rule for glyphs of
// class firstClass.
func contextFmt2(covered []uint16, classes map[uint16]uint16, firstClass uint16,
	input []uint16, actions ...action) *otbuild.Node {
	//
	sub := otbuild.New().U16(2).Off16(otbuild.Coverage1(covered...)).
		Off16(otbuild.ClassDefMap(classes)).U16(firstClass + 1)
	for c := uint16(0); c < firstClass; c++ {
		sub.Off16(nil)
	}
	return sub.Off16(otbuild.New().U16(1).Off16(sequenceRule(input, actions...)))
}

func contextFmt3(coverages [][]uint16, actions ...action) *otbuild.Node {
	sub := otbuild.New().U16(3, uint16(len(coverages)), uint16(len(actions)))
	for _, cov := range coverages {
		sub.Off16(otbuild.Coverage1(cov...))
	}
	for _, a := range actions {
		sub.U16(a.sequenceIndex, a.lookupIndex)
	}
	return sub
}

type anchor struct{ x, y int16 }

// markBase builds a MarkBasePos subtable with one mark class.
func markBase(marks []uint16, markAnchor anchor, base uint16, baseAnchor anchor) *otbuild.Node {
	markArray := otbuild.New().U16(uint16(len(marks)))
	for range marks {
		markArray.U16(0).Off16(otbuild.Anchor(markAnchor.x, markAnchor.y))
	}
	baseArray := otbuild.New().U16(1).Off16(otbuild.Anchor(baseAnchor.x, baseAnchor.y))
	return otbuild.New().U16(1).
		Off16(otbuild.Coverage1(marks...)).
		Off16(otbuild.Coverage1(base)).
		U16(1).
		Off16(markArray).
		Off16(baseArray)
}

// markLigature builds a MarkLigPos subtable with one mark class and a
// ligature of two components. The first component has no anchor.
func markLigature(mark uint16, markAnchor anchor, ligature uint16, compAnchor anchor) *otbuild.Node {
	markArray := otbuild.New().U16(1).U16(0).Off16(otbuild.Anchor(markAnchor.x, markAnchor.y))
	attach := otbuild.New().U16(2).Off16(nil).Off16(otbuild.Anchor(compAnchor.x, compAnchor.y))
	ligArray := otbuild.New().U16(1).Off16(attach)
	return otbuild.New().U16(1).
		Off16(otbuild.Coverage1(mark)).
		Off16(otbuild.Coverage1(ligature)).
		U16(1).
		Off16(markArray).
		Off16(ligArray)
}
