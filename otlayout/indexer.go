package otlayout

import "github.com/npillmayer/otglyph/ot"

// GlyphIndexer walks the window of a GlyphLine one glyph at a time, stepping
// over glyphs a lookup ignores. It does not move the line's cursor.
type GlyphIndexer struct {
	Line  *GlyphLine
	Idx   int   // current position
	Glyph Glyph // glyph at Idx, valid after a successful step
}

// NextGlyph moves to the next glyph after Idx not ignored under flag.
// It returns false if the end of the window is reached first.
func (gi *GlyphIndexer) NextGlyph(tr *TableReader, flag ot.LayoutTableLookupFlag) bool {
	for gi.Idx++; gi.Idx < gi.Line.End; gi.Idx++ {
		if g := gi.Line.glyphs[gi.Idx]; !tr.IsSkip(g.index, flag) {
			gi.Glyph = g
			return true
		}
	}
	gi.Glyph = Glyph{}
	return false
}

// PreviousGlyph moves to the nearest glyph before Idx not ignored under flag.
// It returns false if the start of the window is reached first.
func (gi *GlyphIndexer) PreviousGlyph(tr *TableReader, flag ot.LayoutTableLookupFlag) bool {
	for gi.Idx--; gi.Idx >= gi.Line.Start; gi.Idx-- {
		if g := gi.Line.glyphs[gi.Idx]; !tr.IsSkip(g.index, flag) {
			gi.Glyph = g
			return true
		}
	}
	gi.Glyph = Glyph{}
	return false
}
