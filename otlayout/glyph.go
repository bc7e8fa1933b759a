package otlayout

import (
	"fmt"

	"github.com/npillmayer/otglyph/ot"
)

// Glyph is one glyph of a shaped text. Glyphs are values and never change
// after construction; substitutions and positionings create new Glyphs.
//
// A Glyph knows the text it stands for (chars). For glyphs created from
// text this is the input text, for ligatures it is the concatenated text of
// its components. If chars is absent, the default Unicode code-point of the
// glyph, as stated by the font's character map, is used.
type Glyph struct {
	index                  ot.GlyphIndex
	width                  int
	unicode                ot.Option[rune]
	chars                  ot.Option[string]
	xPlacement, yPlacement int
	xAdvance, yAdvance     int
	anchorDelta            int // position of attachment glyph relative to this glyph
	isMark                 bool
}

// NewGlyph creates a glyph for a glyph ID with advance width and optional
// default Unicode code-point.
func NewGlyph(index ot.GlyphIndex, width int, unicode ot.Option[rune]) Glyph {
	return Glyph{index: index, width: width, unicode: unicode}
}

// Index returns the glyph ID.
func (g Glyph) Index() ot.GlyphIndex { return g.index }

// Width returns the advance width in font units.
func (g Glyph) Width() int { return g.width }

// Unicode returns the default Unicode code-point of the glyph, if any.
func (g Glyph) Unicode() ot.Option[rune] { return g.unicode }

// Chars returns the text the glyph stands for, if known.
func (g Glyph) Chars() ot.Option[string] { return g.chars }

// Placement returns the accumulated placement deltas.
func (g Glyph) Placement() (x, y int) { return g.xPlacement, g.yPlacement }

// Advance returns the accumulated advance deltas.
func (g Glyph) Advance() (x, y int) { return g.xAdvance, g.yAdvance }

// AnchorDelta returns the position of the glyph this glyph has been attached to,
// relative to this glyph's position in the line. 0 means not attached.
func (g Glyph) AnchorDelta() int { return g.anchorDelta }

// IsMark reports whether GDEF classifies the glyph as a mark.
func (g Glyph) IsMark() bool { return g.isMark }

// Text returns the text the glyph stands for: its chars if present, else its
// default Unicode code-point, else the empty string.
func (g Glyph) Text() string {
	if s, ok := g.chars.Unwrap(); ok {
		return s
	}
	if r, ok := g.unicode.Unwrap(); ok {
		return string(r)
	}
	return ""
}

// WithChars returns a copy of g standing for text s.
func (g Glyph) WithChars(s string) Glyph {
	g.chars = ot.Some(s)
	return g
}

// WithoutChars returns a copy of g with no explicit text.
func (g Glyph) WithoutChars() Glyph {
	g.chars = ot.None[string]()
	return g
}

// WithMark returns a copy of g with the mark classification set.
func (g Glyph) WithMark(isMark bool) Glyph {
	g.isMark = isMark
	return g
}

// Positioned returns a copy of g with placement and advance deltas added to
// the ones of g. anchorDelta replaces the attachment link of g.
func (g Glyph) Positioned(xPlacement, yPlacement, xAdvance, yAdvance, anchorDelta int) Glyph {
	g.xPlacement += xPlacement
	g.yPlacement += yPlacement
	g.xAdvance += xAdvance
	g.yAdvance += yAdvance
	g.anchorDelta = anchorDelta
	return g
}

// Equal reports whether g and o are the same glyph standing for the same text.
// Positioning is not considered.
func (g Glyph) Equal(o Glyph) bool {
	return g.index == o.index && g.width == o.width && g.chars == o.chars
}

func (g Glyph) String() string {
	s := fmt.Sprintf("#%d", g.index)
	if t := g.Text(); t != "" {
		s += fmt.Sprintf("%q", t)
	}
	if g.xPlacement != 0 || g.yPlacement != 0 {
		s += fmt.Sprintf("@(%d,%d)", g.xPlacement, g.yPlacement)
	}
	return s
}
