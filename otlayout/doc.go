/*
Package otlayout applies OpenType layout lookups to lines of glyphs.

A TableReader is created once per font table (GSUB or GPOS). It decodes the
table's lookup list and owns the glyph classifications from GDEF. Afterwards it
is read-only and may be shared by any number of goroutines shaping different
text runs.

Text is represented as a GlyphLine, a buffer of Glyphs with an active window
[Start, End) and a cursor Idx. A shaping driver selects lookups, usually by
feature (see FeatureLookups), and applies them one after the other:

	line := otlayout.NewGlyphLine(glyphs)
	for _, inx := range reader.FeatureLookups(ot.T("latn"), ot.T("dflt"), ot.T("liga")) {
	    lookup, err := reader.ResolveLookup(inx)
	    ...
	    changed, err := lookup.TransformLine(line)
	}

Supported lookup types are GSUB 1 to 5 and GPOS 4 and 5. Lookups of other
types are decoded as lookups without effect.

Not finding something to do is the common case during shaping: a glyph not
covered by a subtable, no matching context, no base glyph for a mark. These are
not errors. Errors are either *ot.ParseError, returned when creating a
TableReader, or *EngineFault, returned during shaping if a font references a
lookup it does not contain.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// MaxNestingDepth limits the recursion of contextual lookups invoking other
// lookups. Nested actions beyond this depth are not executed.
const MaxNestingDepth = 64

// ErrEngineFault is wrapped by every EngineFault.
var ErrEngineFault = errors.New("OpenType engine fault")

// EngineFault is reported during shaping when a lookup references another
// lookup which does not exist. It indicates a malformed font.
type EngineFault struct {
	Table       ot.Tag // GSUB or GPOS
	LookupIndex int    // the unresolvable lookup index
	Issue       string
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("%s: %s lookup %d: %s", ErrEngineFault, e.Table, e.LookupIndex, e.Issue)
}

// Unwrap makes ErrEngineFault available to errors.Is.
func (e *EngineFault) Unwrap() error {
	return ErrEngineFault
}
