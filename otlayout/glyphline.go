package otlayout

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otglyph/ot"
)

// GlyphLine is a mutable sequence of glyphs, the canvas lookups operate on.
//
// Lookups read and modify glyphs within the window [Start, End) only. Idx is
// the cursor of a running traversal. Inserting or removing glyphs adjusts End,
// and Idx if the edit happens at or before the cursor.
//
// A GlyphLine is owned by a single goroutine; it is not safe for concurrent use.
type GlyphLine struct {
	glyphs []Glyph
	Start  int // first glyph of the window
	End    int // position after the last glyph of the window
	Idx    int // cursor
}

// NewGlyphLine creates a line from a sequence of glyphs. The window spans
// all glyphs. glyphs is copied.
func NewGlyphLine(glyphs []Glyph) *GlyphLine {
	return NewGlyphLineRange(glyphs, 0, len(glyphs))
}

// NewGlyphLineRange creates a line from a sequence of glyphs with window
// [start, end). glyphs is copied. The window is clipped to the glyphs.
func NewGlyphLineRange(glyphs []Glyph, start, end int) *GlyphLine {
	g := make([]Glyph, len(glyphs))
	copy(g, glyphs)
	start, end = clip(start, end, len(g))
	return &GlyphLine{glyphs: g, Start: start, End: end, Idx: start}
}

// SubLine returns a new line holding a copy of glyphs [left, right) of l.
func (l *GlyphLine) SubLine(left, right int) *GlyphLine {
	left, right = clip(left, right, len(l.glyphs))
	return NewGlyphLine(l.glyphs[left:right])
}

func clip(left, right, n int) (int, int) {
	left = max(0, min(left, n))
	right = max(left, min(right, n))
	return left, right
}

// Size returns the number of glyphs of the line, including glyphs outside
// the window.
func (l *GlyphLine) Size() int {
	return len(l.glyphs)
}

// Len returns the number of glyphs within the window.
func (l *GlyphLine) Len() int {
	return l.End - l.Start
}

// Get returns the glyph at position i.
func (l *GlyphLine) Get(i int) Glyph {
	return l.glyphs[i]
}

// Set replaces the glyph at position i and returns the old one.
func (l *GlyphLine) Set(i int, g Glyph) Glyph {
	old := l.glyphs[i]
	l.glyphs[i] = g
	return old
}

// Glyphs returns a copy of the glyphs within the window.
func (l *GlyphLine) Glyphs() []Glyph {
	g := make([]Glyph, l.End-l.Start)
	copy(g, l.glyphs[l.Start:l.End])
	return g
}

// Insert inserts glyphs before position at, which has to be within
// [Start, End]. End grows by the number of inserted glyphs; if at <= Idx,
// Idx is moved as well.
func (l *GlyphLine) Insert(at int, glyphs ...Glyph) {
	if at < l.Start || at > l.End {
		panic(fmt.Sprintf("glyph line: insert position %d outside of window [%d,%d)", at, l.Start, l.End))
	}
	n := len(glyphs)
	l.glyphs = append(l.glyphs, glyphs...) // grow
	copy(l.glyphs[at+n:], l.glyphs[at:len(l.glyphs)-n])
	copy(l.glyphs[at:], glyphs)
	l.End += n
	if at <= l.Idx {
		l.Idx += n
	}
}

// Remove removes the glyph at position at, which has to be within the window,
// and returns it. End shrinks by one; if at < Idx, Idx is moved as well.
func (l *GlyphLine) Remove(at int) Glyph {
	if at < l.Start || at >= l.End {
		panic(fmt.Sprintf("glyph line: remove position %d outside of window [%d,%d)", at, l.Start, l.End))
	}
	g := l.glyphs[at]
	l.glyphs = append(l.glyphs[:at], l.glyphs[at+1:]...)
	l.End--
	if at < l.Idx {
		l.Idx--
	}
	return g
}

// --- Substitutions ---------------------------------------------------------

// SubstituteOneToOne replaces the glyph at the cursor by g.
// The new glyph inherits the text of the old one, if present. Otherwise it
// stands for its own default Unicode code-point.
func (l *GlyphLine) SubstituteOneToOne(g Glyph) {
	old := l.glyphs[l.Idx]
	if chars, ok := old.chars.Unwrap(); ok {
		g = g.WithChars(chars)
	} else if r, ok := g.unicode.Unwrap(); ok {
		g = g.WithChars(string(r))
	} else {
		g = g.WithoutChars()
	}
	l.glyphs[l.Idx] = g
}

// SubstituteOneToMany replaces the glyph at the cursor by a sequence of glyphs.
// The cursor is left at the last glyph of the sequence. An empty sequence
// leaves the line unchanged.
func (l *GlyphLine) SubstituteOneToMany(glyphs []Glyph) {
	if len(glyphs) == 0 {
		return
	}
	at := l.Idx
	l.glyphs[at] = glyphs[0]
	if len(glyphs) > 1 {
		l.Insert(at+1, glyphs[1:]...)
	}
	l.Idx = at + len(glyphs) - 1
}

// SubstituteManyToOne merges the glyph at the cursor and the following
// rightPartLen non-skipped glyphs into glyph lig. The merged glyphs must have
// been matched before. The text of lig is the concatenated text of all merged
// glyphs. Glyphs skipped due to flag stay in place. End shrinks by
// rightPartLen.
func (l *GlyphLine) SubstituteManyToOne(tr *TableReader, flag ot.LayoutTableLookupFlag, rightPartLen int, lig Glyph) {
	var text strings.Builder
	text.WriteString(l.glyphs[l.Idx].Text())
	gidx := GlyphIndexer{Line: l, Idx: l.Idx}
	for j := 0; j < rightPartLen; j++ {
		if !gidx.NextGlyph(tr, flag) {
			break
		}
		text.WriteString(gidx.Glyph.Text())
		l.Remove(gidx.Idx)
		gidx.Idx--
	}
	l.glyphs[l.Idx] = lig.WithChars(text.String())
}

// ToUnicodeText returns the text the glyphs in [left, right) stand for.
func (l *GlyphLine) ToUnicodeText(left, right int) string {
	left, right = clip(left, right, len(l.glyphs))
	var text strings.Builder
	for _, g := range l.glyphs[left:right] {
		text.WriteString(g.Text())
	}
	return text.String()
}

func (l *GlyphLine) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, g := range l.glyphs {
		if i == l.Start {
			sb.WriteString("⟨")
		}
		if i > 0 && i != l.Start {
			sb.WriteString(" ")
		}
		sb.WriteString(g.String())
		if i+1 == l.End {
			sb.WriteString("⟩")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
