package ot

// GlyphClassDefEnum lists the glyph classes for ClassDefinitions
// ('GlyphClassDef'-table of GDEF).
type GlyphClassDefEnum uint16

const (
	BaseGlyph      GlyphClassDefEnum = iota + 1 // single character, spacing glyph
	LigatureGlyph                               // multiple character, spacing glyph
	MarkGlyph                                   // non-spacing combining glyph
	ComponentGlyph                              // part of single character, spacing glyph
)

// ClassDefinitions groups glyphs into classes, denoted as integer values.
//
// From the spec:
// For efficiency and ease of representation, a font developer can group glyph indices
// to form glyph classes. Class assignments vary in meaning from one lookup subtable
// to another. For example, in the GSUB and GPOS tables, classes are used to describe
// glyph contexts. GDEF tables also use the idea of glyph classes.
// (see https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table)
//
// Glyphs not assigned to a class belong to class 0.
type ClassDefinitions struct {
	classes map[GlyphIndex]int
}

// Class returns the class of glyph g, or 0 if g is not assigned to any class.
func (cdef ClassDefinitions) Class(g GlyphIndex) int {
	return cdef.classes[g]
}

// StrictClass returns the class of glyph g and true if g has an explicit class
// assignment. For glyphs without assignment it returns 0 and false.
func (cdef ClassDefinitions) StrictClass(g GlyphIndex) (int, bool) {
	c, ok := cdef.classes[g]
	return c, ok
}

// Len returns the number of glyphs with an explicit class assignment.
func (cdef ClassDefinitions) Len() int {
	return len(cdef.classes)
}

// ParseClassDefinitions decodes a class definition table at location at.
// Format 1 assigns one class value per glyph of a consecutive range of glyphs,
// format 2 lists ranges of glyphs sharing a class.
func ParseClassDefinitions(src Source, at int) (ClassDefinitions, error) {
	r := src.Reader("ClassDef")
	format := r.U16(at)
	if err := r.Err(); err != nil {
		return ClassDefinitions{}, err
	}
	cdef := ClassDefinitions{classes: make(map[GlyphIndex]int)}
	switch format {
	case 1:
		start := int(r.U16(at + 2))
		n := int(r.U16(at + 4))
		if start+n > MaxClassDefCount+1 {
			r.Fail(at, "class definition exceeds glyph range")
			break
		}
		for i, c := range r.U16s(at+6, n) {
			cdef.classes[GlyphIndex(start+i)] = int(c)
		}
	case 2:
		n := int(r.U16(at + 2))
		total := 0
		for i := 0; i < n && r.Err() == nil; i++ {
			rec := at + 4 + 6*i
			from, to := int(r.U16(rec)), int(r.U16(rec+2))
			class := int(r.U16(rec + 4))
			if r.Err() != nil {
				break
			}
			if to < from {
				r.Fail(rec, "class range end before start")
				break
			}
			if total += to - from + 1; total > MaxClassDefCount+1 {
				r.Fail(rec, "class definition too large")
				break
			}
			for g := from; g <= to; g++ {
				cdef.classes[GlyphIndex(g)] = class
			}
		}
	default:
		r.FailFormat(at, format)
	}
	if err := r.Err(); err != nil {
		return ClassDefinitions{}, err
	}
	tracer().Debugf("class definitions format %d: %d glyphs", format, len(cdef.classes))
	return cdef, nil
}
