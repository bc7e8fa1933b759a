/*
Package ot decodes the binary structures of OpenType layout tables.

Intended audience for this package is the glyph-transformation engine in
package otlayout, which needs coverage tables, class definitions, anchors,
GDEF glyph classes and the lookup lists of GSUB and GPOS, but which does not
want to deal with offsets and byte order.

Package `ot` will not apply any of the tables, but rather expose their decoded
contents to the client. All decoders are pure functions of a table's bytes
and a location within these bytes. Every decoded structure is immutable after
construction and may be shared between goroutines.

Offsets in OpenType are relative to the start of the structure containing them.
Decoders in this package hide that detail: every location handed around is an
absolute byte position within the table (see type Source). Location 0 always
denotes the table header, so it doubles as the "absent" marker for optional
sub-structures.

Errors are reported as *ParseError, carrying the table tag, the structure being
decoded and the offending location.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
