/*
Package otquery answers questions about a font which are not about glyph
transformations: its names, its global metrics, and which of its scripts and
languages a layout table supports.

Queries work on the raw bytes of font tables. Missing or malformed tables
yield a result of false instead of an error, as none of the tables queried
here is needed to apply layout lookups.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Tables gives access to the tables of a font by tag. *otglyph.Font
// implements it.
type Tables interface {
	Table(tag ot.Tag) ([]byte, bool)
}

// TableMap is a map of font tables, as returned by ot.ParseTableDirectory.
type TableMap map[ot.Tag][]byte

// Table returns the bytes of a table.
func (m TableMap) Table(tag ot.Tag) ([]byte, bool) {
	b, ok := m[tag]
	return b, ok
}

func source(font Tables, tag ot.Tag) (ot.Source, bool) {
	if font == nil {
		return ot.Source{}, false
	}
	b, ok := font.Table(tag)
	if !ok {
		tracer().Debugf("no table %s in font", tag)
		return ot.Source{}, false
	}
	return ot.NewSource(tag, b), true
}

func reader(font Tables, tag ot.Tag) (*ot.Reader, bool) {
	src, ok := source(font, tag)
	if !ok {
		return nil, false
	}
	return src.Reader(tag.String()), true
}
