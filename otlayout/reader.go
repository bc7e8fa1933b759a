package otlayout

import (
	"fmt"

	"github.com/npillmayer/otglyph/ot"
)

// GlyphSource is the master table of a font's glyphs, mapping glyph IDs to
// glyphs with advance width and default Unicode code-point. It is provided
// by the font container.
type GlyphSource interface {
	Glyph(gid ot.GlyphIndex) (Glyph, bool)
}

// GlyphMap is a simple GlyphSource backed by a map.
type GlyphMap map[ot.GlyphIndex]Glyph

// Glyph implements GlyphSource.
func (m GlyphMap) Glyph(gid ot.GlyphIndex) (Glyph, bool) {
	g, ok := m[gid]
	return g, ok
}

// TableReader holds the decoded lookups of a GSUB or GPOS table, together
// with the glyph master table and the GDEF glyph classes needed to apply them.
//
// A TableReader does not change after construction and is safe for
// concurrent use.
type TableReader struct {
	src      ot.Source
	glyphs   GlyphSource
	gdef     *ot.GDef
	header   ot.LayoutHeader
	scripts  map[ot.Tag]ot.Script
	features []ot.Feature
	lookups  []*LookupTable
}

// NewTableReader decodes a GSUB or GPOS table, given as the table's bytes.
// tag has to be either "GSUB" or "GPOS". glyphs is the glyph master table of
// the font. gdef may be nil if the font has no GDEF table; lookup flags
// requesting to skip glyph classes are ignored in this case.
//
// All lookups are decoded upfront. Lookups reference other lookups by index
// only, and these references are resolved when a lookup is applied.
// Any decoding error aborts construction and is returned as *ot.ParseError.
func NewTableReader(tag ot.Tag, table []byte, glyphs GlyphSource, gdef *ot.GDef) (*TableReader, error) {
	if tag != ot.T("GSUB") && tag != ot.T("GPOS") {
		return nil, &ot.ParseError{Table: tag, Section: "Header", Issue: "not a layout table"}
	}
	if glyphs == nil {
		glyphs = GlyphMap{}
	}
	tr := &TableReader{src: ot.NewSource(tag, table), glyphs: glyphs, gdef: gdef}
	var err error
	if tr.header, err = ot.ParseLayoutHeader(tr.src); err != nil {
		return nil, err
	}
	if tr.scripts, err = ot.ParseScriptList(tr.src, tr.header.ScriptList); err != nil {
		return nil, err
	}
	if tr.features, err = ot.ParseFeatureList(tr.src, tr.header.FeatureList); err != nil {
		return nil, err
	}
	var records []ot.LookupRecord
	if tr.header.LookupList != 0 {
		if records, err = ot.ParseLookupList(tr.src, tr.header.LookupList); err != nil {
			return nil, err
		}
	}
	tr.lookups = make([]*LookupTable, len(records))
	for i, rec := range records {
		if tr.lookups[i], err = tr.parseLookup(rec); err != nil {
			return nil, err
		}
	}
	tracer().Infof("%s table reader: %d scripts, %d features, %d lookups",
		tag, len(tr.scripts), len(tr.features), len(tr.lookups))
	return tr, nil
}

// Tag returns the tag of the table, either GSUB or GPOS.
func (tr *TableReader) Tag() ot.Tag {
	return tr.src.Tag()
}

// IsGPos reports whether the reader holds GPOS lookups.
func (tr *TableReader) IsGPos() bool {
	return tr.src.Tag() == ot.T("GPOS")
}

// LookupCount returns the number of lookups of the table.
func (tr *TableReader) LookupCount() int {
	return len(tr.lookups)
}

// Lookups returns all lookups of the table, in lookup list order.
func (tr *TableReader) Lookups() []*LookupTable {
	l := make([]*LookupTable, len(tr.lookups))
	copy(l, tr.lookups)
	return l
}

// ResolveLookup returns the lookup with the given index. An index without
// lookup results in an *EngineFault.
func (tr *TableReader) ResolveLookup(index int) (*LookupTable, error) {
	if index < 0 || index >= len(tr.lookups) {
		return nil, &EngineFault{
			Table:       tr.src.Tag(),
			LookupIndex: index,
			Issue:       fmt.Sprintf("no such lookup, table has %d lookups", len(tr.lookups)),
		}
	}
	return tr.lookups[index], nil
}

// Glyph returns the glyph for a glyph ID from the glyph master table.
// Glyphs unknown to the master table get width 0 and no Unicode code-point.
// The mark classification is taken from GDEF.
func (tr *TableReader) Glyph(gid ot.GlyphIndex) Glyph {
	g, ok := tr.glyphs.Glyph(gid)
	if !ok {
		g = NewGlyph(gid, 0, ot.None[rune]())
	}
	return g.WithMark(tr.gdef.GlyphClass(gid) == ot.MarkGlyph)
}

// IsSkip reports whether a lookup with the given flag ignores glyph gid.
//
// Bits of flag request to ignore base glyphs, ligatures or marks, as classified
// by GDEF. A non-zero mark attachment type in the upper byte of flag makes the
// lookup ignore marks of a different mark attachment class. If GDEF has no
// glyph class definitions, glyphs with a non-zero mark attachment class are
// taken as marks. Without GDEF no glyph is ever skipped.
func (tr *TableReader) IsSkip(gid ot.GlyphIndex, flag ot.LayoutTableLookupFlag) bool {
	if tr == nil || tr.gdef == nil {
		return false
	}
	class := tr.gdef.GlyphClass(gid)
	switch class {
	case ot.BaseGlyph:
		if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
			return true
		}
	case ot.LigatureGlyph:
		if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
			return true
		}
	case ot.MarkGlyph:
		if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
			return true
		}
	}
	markType := flag.MarkAttachmentType()
	if markType == 0 || !tr.gdef.MarkAttachClassDef.IsSome() {
		return false
	}
	if class == ot.MarkGlyph {
		return tr.gdef.MarkAttachClass(gid) != markType
	}
	if !tr.gdef.GlyphClassDef.IsSome() {
		// without glyph classes, glyphs with an attachment class count as marks
		attach := tr.gdef.MarkAttachClass(gid)
		return attach != 0 && attach != markType
	}
	return false
}
