/*
Package otglyph applies the glyph transformations of OpenType fonts.

OpenType fonts carry rules for replacing glyphs (GSUB) and for positioning
them (GPOS). Package otglyph connects a font binary to the engine in package
otlayout: it extracts the layout tables, builds the table of glyphs with
their advance widths and default code-points, and creates glyph lines from
text.

	f, err := otglyph.LoadFont("MyFont.otf")
	…
	line := f.LineForText("ﬁnal affair")
	err = f.ApplyFeatures(line, otglyph.ScriptTag(language.English), otglyph.LangTag(language.English),
	    ot.T("liga"), ot.T("mark"))

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# Status

Does not contain methods for font collections (*.ttc).

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otglyph

import (
	"fmt"
	"sync"

	"github.com/npillmayer/otglyph/internal/fontload"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Font is a scalable font prepared for glyph transformations.
//
// A Font does not change after creation and may be shared between goroutines.
// Glyph lines created from it are owned by the caller.
type Font struct {
	Name   string
	tables map[ot.Tag][]byte
	glyphs otlayout.GlyphMap
	cmap   map[rune]ot.GlyphIndex
	gdef   *ot.GDef
	gsub   *otlayout.TableReader
	gpos   *otlayout.TableReader
}

// LoadFont loads an OpenType font (TTF or OTF) from a file.
func LoadFont(fontfile string) (*Font, error) {
	sf, err := fontload.LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	return fromScalableFont(sf)
}

// ParseFont prepares an OpenType font (TTF or OTF) given as bytes.
func ParseFont(data []byte) (*Font, error) {
	sf, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	return fromScalableFont(sf)
}

// FallbackFont returns a font which is always present. Currently we use Go Sans.
func FallbackFont() *Font {
	fallbackOnce.Do(func() {
		var err error
		if fallback, err = fromScalableFont(fontload.FallbackFont()); err != nil {
			panic("cannot prepare default font") // this cannot happen
		}
	})
	return fallback
}

var (
	fallbackOnce sync.Once
	fallback     *Font
)

func fromScalableFont(sf *fontload.ScalableFont) (*Font, error) {
	tables, err := ot.ParseTableDirectory(sf.Binary)
	if err != nil {
		return nil, err
	}
	advances := sf.Advances()
	glyphs := make(otlayout.GlyphMap, len(advances))
	for i, w := range advances {
		gid := ot.GlyphIndex(i)
		u := ot.None[rune]()
		if r, ok := sf.Unicode(gid); ok {
			u = ot.Some(r)
		}
		glyphs[gid] = otlayout.NewGlyph(gid, w, u)
	}
	return NewFont(sf.Fontname, tables, glyphs, sf.CodePoints())
}

// NewFont creates a font from its tables, as returned by ot.ParseTableDirectory,
// the master table of glyphs and the character map. It is intended for
// clients managing font containers on their own.
//
// GSUB, GPOS and GDEF are decoded if present. A font without layout tables is
// valid; it just has no transformations to offer.
func NewFont(name string, tables map[ot.Tag][]byte, glyphs otlayout.GlyphMap, cmap map[rune]ot.GlyphIndex) (*Font, error) {
	f := &Font{Name: name, tables: tables, glyphs: glyphs, cmap: cmap}
	if f.glyphs == nil {
		f.glyphs = otlayout.GlyphMap{}
	}
	var err error
	if b, ok := tables[ot.T("GDEF")]; ok {
		if f.gdef, err = ot.ParseGDef(ot.NewSource(ot.T("GDEF"), b)); err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
	}
	if b, ok := tables[ot.T("GSUB")]; ok {
		if f.gsub, err = otlayout.NewTableReader(ot.T("GSUB"), b, f.glyphs, f.gdef); err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
	}
	if b, ok := tables[ot.T("GPOS")]; ok {
		if f.gpos, err = otlayout.NewTableReader(ot.T("GPOS"), b, f.glyphs, f.gdef); err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
	}
	tracer().Infof("font %q: %d tables, %d glyphs, GSUB=%v GPOS=%v GDEF=%v", name, len(tables),
		len(f.glyphs), f.gsub != nil, f.gpos != nil, f.gdef != nil)
	return f, nil
}

// Table returns the bytes of a font table.
func (f *Font) Table(tag ot.Tag) ([]byte, bool) {
	b, ok := f.tables[tag]
	return b, ok
}

// GSub returns the reader for the font's GSUB table, or nil.
func (f *Font) GSub() *otlayout.TableReader {
	return f.gsub
}

// GPos returns the reader for the font's GPOS table, or nil.
func (f *Font) GPos() *otlayout.TableReader {
	return f.gpos
}

// GDef returns the font's glyph classification, or nil.
func (f *Font) GDef() *ot.GDef {
	return f.gdef
}

// Glyphs returns the master table of glyphs.
func (f *Font) Glyphs() otlayout.GlyphSource {
	return f.glyphs
}

// GlyphIndex returns the glyph a code-point maps to.
func (f *Font) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	g, ok := f.cmap[r]
	return g, ok
}
