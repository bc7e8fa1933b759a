package ot

// GDef holds the glyph classifications of a GDEF table which are relevant
// for applying lookups: the glyph class definitions (base, ligature, mark,
// component) and the mark attachment class definitions. Both are optional.
//
// See also
// https://docs.microsoft.com/en-us/typography/opentype/spec/gdef
type GDef struct {
	GlyphClassDef       Option[ClassDefinitions]
	MarkAttachClassDef  Option[ClassDefinitions]
	MarkGlyphSetsOffset int // location of the mark glyph sets table, 0 if absent (GDEF 1.2)
}

// GlyphClass returns the GDEF glyph class of g, or 0 if GDEF does not classify g.
func (gdef *GDef) GlyphClass(g GlyphIndex) GlyphClassDefEnum {
	if gdef == nil {
		return 0
	}
	if cdef, ok := gdef.GlyphClassDef.Unwrap(); ok {
		return GlyphClassDefEnum(cdef.Class(g))
	}
	return 0
}

// MarkAttachClass returns the mark attachment class of g, or 0 if there is none.
func (gdef *GDef) MarkAttachClass(g GlyphIndex) int {
	if gdef == nil {
		return 0
	}
	if cdef, ok := gdef.MarkAttachClassDef.Unwrap(); ok {
		return cdef.Class(g)
	}
	return 0
}

// ParseGDef decodes the header of a GDEF table and its class definition tables.
// Attachment point lists and ligature caret lists are not decoded.
func ParseGDef(src Source) (*GDef, error) {
	r := src.Reader("GDefHeader")
	major, minor := r.U16(0), r.U16(2)
	glyphClassLoc := r.Link16(0, 4)
	markAttachLoc := r.Link16(0, 10)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if major != 1 {
		r.Fail(0, "unsupported GDEF major version")
		return nil, r.Err()
	}
	gdef := &GDef{}
	if minor >= 2 {
		gdef.MarkGlyphSetsOffset = r.Link16(0, 12)
		if err := r.Err(); err != nil {
			return nil, err
		}
	}
	if glyphClassLoc != 0 {
		cdef, err := ParseClassDefinitions(src, glyphClassLoc)
		if err != nil {
			return nil, err
		}
		gdef.GlyphClassDef = Some(cdef)
	}
	if markAttachLoc != 0 {
		cdef, err := ParseClassDefinitions(src, markAttachLoc)
		if err != nil {
			return nil, err
		}
		gdef.MarkAttachClassDef = Some(cdef)
	}
	tracer().Infof("GDEF %d.%d: glyph classes = %v, mark attachment classes = %v",
		major, minor, gdef.GlyphClassDef.IsSome(), gdef.MarkAttachClassDef.IsSome())
	return gdef, nil
}
