package otlayout

import (
	"fmt"

	"github.com/npillmayer/otglyph/ot"
)

// Lookup is what a shaping driver applies to a GlyphLine.
type Lookup interface {
	// TransformOne applies the lookup at the cursor of line and advances the
	// cursor by at least one position.
	TransformOne(line *GlyphLine) (bool, error)
	// TransformLine applies the lookup to every position of line's window.
	TransformLine(line *GlyphLine) (bool, error)
}

var _ Lookup = (*LookupTable)(nil)

// LookupTable is a decoded lookup of a GSUB or GPOS table.
type LookupTable struct {
	Index     int
	Type      ot.LayoutTableLookupType
	Flag      ot.LayoutTableLookupFlag
	reader    *TableReader
	subtables []subtable
	supported bool
}

// subtable is implemented by the decoded subtables of all supported lookup
// types. apply tries the subtable at the cursor of line. If the subtable
// does not apply, it returns false and leaves line untouched. Otherwise it
// returns true, whether the line has been changed, and leaves the cursor
// after the glyphs it processed.
type subtable interface {
	apply(lt *LookupTable, line *GlyphLine, depth int) (applied, changed bool, err error)
}

// Supported reports whether the engine implements the lookup's type. Lookups
// of unsupported types have no effect.
func (lt *LookupTable) Supported() bool {
	return lt.supported
}

// SubtableCount returns the number of decoded subtables.
func (lt *LookupTable) SubtableCount() int {
	return len(lt.subtables)
}

// TypeName returns the lookup type as a string, e.g. "Ligature".
func (lt *LookupTable) TypeName() string {
	if lt.reader.IsGPos() {
		return lt.Type.GPosString()
	}
	return lt.Type.GSubString()
}

func (lt *LookupTable) String() string {
	return fmt.Sprintf("%s lookup #%d (%s, flag=0x%04x)", lt.reader.Tag(), lt.Index, lt.TypeName(), uint16(lt.Flag))
}

// TransformOne applies the lookup to the glyph at the cursor of line and
// advances the cursor by at least one position. Subtables are tried in order,
// and the first applicable subtable is executed. It returns true if the line
// has been changed.
func (lt *LookupTable) TransformOne(line *GlyphLine) (bool, error) {
	return lt.transformOne(line, 0)
}

func (lt *LookupTable) transformOne(line *GlyphLine, depth int) (bool, error) {
	if line.Idx < line.Start || line.Idx >= line.End {
		return false, nil
	}
	start := line.Idx
	if !lt.supported || lt.reader.IsSkip(line.glyphs[start].index, lt.Flag) {
		line.Idx++
		return false, nil
	}
	for _, sub := range lt.subtables {
		applied, changed, err := sub.apply(lt, line, depth)
		if err != nil {
			return changed, err
		}
		if applied {
			if line.Idx <= start {
				line.Idx = start + 1
			}
			return changed, nil
		}
	}
	line.Idx++
	return false, nil
}

// TransformLine applies the lookup to every glyph position within the window
// of line, starting at Start. It returns true if any position has been changed.
func (lt *LookupTable) TransformLine(line *GlyphLine) (bool, error) {
	changed := false
	line.Idx = line.Start
	for line.Idx >= line.Start && line.Idx < line.End {
		ch, err := lt.transformOne(line, 0)
		changed = changed || ch
		if err != nil {
			return changed, err
		}
	}
	tracer().Debugf("%s applied: changed = %v", lt, changed)
	return changed, nil
}

// --- Decoding --------------------------------------------------------------

func (tr *TableReader) parseLookup(rec ot.LookupRecord) (*LookupTable, error) {
	lt := &LookupTable{
		Index:  rec.Index,
		Type:   rec.Type,
		Flag:   rec.Flag,
		reader: tr,
	}
	var parse func(ot.Source, int) (subtable, error)
	if tr.IsGPos() {
		switch rec.Type {
		case ot.GPosLookupTypeMarkToBase:
			parse = parseMarkToBase
		case ot.GPosLookupTypeMarkToLigature:
			parse = parseMarkToLigature
		}
	} else {
		switch rec.Type {
		case ot.GSubLookupTypeSingle:
			parse = parseSingleSubst
		case ot.GSubLookupTypeMultiple:
			parse = parseMultipleSubst
		case ot.GSubLookupTypeAlternate:
			parse = parseAlternateSubst
		case ot.GSubLookupTypeLigature:
			parse = parseLigatureSubst
		case ot.GSubLookupTypeContext:
			parse = parseContextSubst
		}
	}
	if parse == nil {
		tracer().Infof("%s: lookup type not supported, lookup will have no effect", lt)
		return lt, nil
	}
	lt.supported = true
	for _, loc := range rec.Subtables {
		if loc == 0 {
			continue
		}
		sub, err := parse(tr.src, loc)
		if err != nil {
			return nil, err
		}
		lt.subtables = append(lt.subtables, sub)
	}
	tracer().Debugf("%s: %d subtables", lt, len(lt.subtables))
	return lt, nil
}
