/*
Package fontload loads scalable fonts and derives the per-glyph data the
layout engine needs: advance widths in font units and the default Unicode
code-point of each glyph.

The SFNT container is read with golang.org/x/image/font/sfnt, the character
map with github.com/go-text/typesetting/font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font // not safe for concurrent use
	cmap     map[rune]ot.GlyphIndex
	runes    map[ot.GlyphIndex]rune // default code-point per glyph
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	f := &ScalableFont{Binary: fbytes}
	var err error
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Infof("font has no full name: %v", err)
	}
	if err = f.readCmap(); err != nil {
		return nil, err
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// readCmap collects the character map in both directions. If more than one
// code-point maps to a glyph, the smallest one becomes the glyph's default.
func (f *ScalableFont) readCmap() error {
	face, err := gotext.ParseTTF(bytes.NewReader(f.Binary))
	if err != nil {
		return fmt.Errorf("reading cmap of %q: %w", f.Fontname, err)
	}
	f.cmap = make(map[rune]ot.GlyphIndex)
	f.runes = make(map[ot.GlyphIndex]rune)
	iter := face.Cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		g := ot.GlyphIndex(gid)
		f.cmap[r] = g
		if prev, ok := f.runes[g]; !ok || r < prev {
			f.runes[g] = r
		}
	}
	tracer().Debugf("cmap of %s maps %d code-points", f.Fontname, len(f.cmap))
	return nil
}

// NumGlyphs returns the number of glyphs of the font.
func (f *ScalableFont) NumGlyphs() int {
	return f.SFNT.NumGlyphs()
}

// UnitsPerEm returns the design units per em.
func (f *ScalableFont) UnitsPerEm() int {
	return int(f.SFNT.UnitsPerEm())
}

// GlyphIndex returns the glyph a code-point maps to.
func (f *ScalableFont) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	g, ok := f.cmap[r]
	return g, ok
}

// CodePoints returns a copy of the character map.
func (f *ScalableFont) CodePoints() map[rune]ot.GlyphIndex {
	m := make(map[rune]ot.GlyphIndex, len(f.cmap))
	for r, g := range f.cmap {
		m[r] = g
	}
	return m
}

// Unicode returns the default code-point of a glyph.
func (f *ScalableFont) Unicode(gid ot.GlyphIndex) (rune, bool) {
	r, ok := f.runes[gid]
	return r, ok
}

// Advances returns the unhinted advance width of every glyph, in font units.
// Glyphs whose advance cannot be read get width 0.
func (f *ScalableFont) Advances() []int {
	var buf sfnt.Buffer
	ppem := fixed.I(f.UnitsPerEm()) // 1 pixel per font unit
	advances := make([]int, f.NumGlyphs())
	for i := range advances {
		adv, err := f.SFNT.GlyphAdvance(&buf, sfnt.GlyphIndex(i), ppem, font.HintingNone)
		if err != nil {
			tracer().Debugf("no advance for glyph %d: %v", i, err)
			continue
		}
		advances[i] = adv.Round()
	}
	return advances
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		var err error
		if fallbackFont, err = ParseOpenTypeFont(goregular.TTF); err != nil {
			panic("cannot load default font") // this cannot happen
		}
		fallbackFont.Filepath = "internal"
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont
