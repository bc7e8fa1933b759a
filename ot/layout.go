package ot

import (
	"fmt"
	"strconv"
)

// MaxExtensionDepth limits chains of extension subtables. OpenType forbids an
// extension subtable to point to another extension subtable, thus 1.
const MaxExtensionDepth = 1

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, indicates that the lookup table structure is followed by a MarkFilteringSet field.
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

// MarkAttachmentType returns the mark attachment class a lookup is restricted to,
// or 0 if it is not restricted.
func (flag LayoutTableLookupFlag) MarkAttachmentType() int {
	return int(flag&LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK) >> 8
}

// LayoutTableLookupType is a type identifier for layout lookup records (GPOS and GSUB).
// Enum values are different for GPOS and GSUB.
type LayoutTableLookupType uint16

// GSUB Lookup Type Enumeration
const (
	GSubLookupTypeSingle          LayoutTableLookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple        LayoutTableLookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate       LayoutTableLookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature        LayoutTableLookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext         LayoutTableLookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext LayoutTableLookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtensionSubs   LayoutTableLookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChaining LayoutTableLookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

// GPOS Lookup Type Enumeration
const (
	GPosLookupTypeSingle            LayoutTableLookupType = 1 // Adjust position of a single glyph
	GPosLookupTypePair              LayoutTableLookupType = 2 // Adjust position of a pair of glyphs
	GPosLookupTypeCursive           LayoutTableLookupType = 3 // Attach cursive glyphs
	GPosLookupTypeMarkToBase        LayoutTableLookupType = 4 // Attach a combining mark to a base glyph
	GPosLookupTypeMarkToLigature    LayoutTableLookupType = 5 // Attach a combining mark to a ligature
	GPosLookupTypeMarkToMark        LayoutTableLookupType = 6 // Attach a combining mark to another mark
	GPosLookupTypeContextPos        LayoutTableLookupType = 7 // Position one or more glyphs in context
	GPosLookupTypeChainedContextPos LayoutTableLookupType = 8 // Position one or more glyphs in chained context
	GPosLookupTypeExtensionPos      LayoutTableLookupType = 9 // Extension mechanism for other positionings
)

var gsubLookupTypeNames = []string{"Single", "Multiple", "Alternate", "Ligature", "Context",
	"Chaining", "Ext", "ReverseChaining"}

var gposLookupTypeNames = []string{"Single", "Pair", "Cursive", "MarkToBase", "MarkToLigature",
	"MarkToMark", "ContextPos", "Chained", "Ext"}

// GSubString interprets a layout table lookup type as a GSUB table type.
func (lt LayoutTableLookupType) GSubString() string {
	if lt >= 1 && int(lt) <= len(gsubLookupTypeNames) {
		return gsubLookupTypeNames[lt-1]
	}
	return strconv.Itoa(int(lt))
}

// GPosString interprets a layout table lookup type as a GPOS table type.
func (lt LayoutTableLookupType) GPosString() string {
	if lt >= 1 && int(lt) <= len(gposLookupTypeNames) {
		return gposLookupTypeNames[lt-1]
	}
	return strconv.Itoa(int(lt))
}

// --- Layout table header ---------------------------------------------------

// LayoutHeader is the common header of GSUB and GPOS. Its fields are locations
// of the top-level lists of the table.
type LayoutHeader struct {
	Major, Minor      uint16
	ScriptList        int
	FeatureList       int
	LookupList        int
	FeatureVariations int // 0 if absent (version 1.0)
}

// ParseLayoutHeader decodes the header of a GSUB or GPOS table.
func ParseLayoutHeader(src Source) (LayoutHeader, error) {
	r := src.Reader("Header")
	h := LayoutHeader{
		Major:       r.U16(0),
		Minor:       r.U16(2),
		ScriptList:  r.Link16(0, 4),
		FeatureList: r.Link16(0, 6),
		LookupList:  r.Link16(0, 8),
	}
	if h.Minor >= 1 {
		h.FeatureVariations = r.Link32(0, 10)
	}
	if err := r.Err(); err != nil {
		return LayoutHeader{}, err
	}
	if h.Major != 1 {
		r.Fail(0, fmt.Sprintf("unsupported %s version %d.%d", src.Tag(), h.Major, h.Minor))
		return LayoutHeader{}, r.Err()
	}
	return h, nil
}

// --- Lookup list -----------------------------------------------------------

// LookupRecord describes one lookup of a lookup list. Extension subtables are
// resolved: Type is the type of the wrapped subtables and Subtables holds
// their locations.
type LookupRecord struct {
	Index            int
	Type             LayoutTableLookupType
	Flag             LayoutTableLookupFlag
	MarkFilteringSet Option[uint16]
	Subtables        []int // locations of subtables
}

// ParseLookupList decodes the lookup list at location at. Whether extension
// lookups use GSUB or GPOS numbering is derived from src's tag.
func ParseLookupList(src Source, at int) ([]LookupRecord, error) {
	r := src.Reader("LookupList")
	n := int(r.U16(at))
	if err := r.Err(); err != nil {
		return nil, err
	}
	if n > MaxLookupCount {
		r.Fail(at, fmt.Sprintf("too many lookups: %d", n))
		return nil, r.Err()
	}
	links := r.Links16(at, at+2, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	extType := GSubLookupTypeExtensionSubs
	if src.Tag() == T("GPOS") {
		extType = GPosLookupTypeExtensionPos
	}
	lookups := make([]LookupRecord, n)
	for i, loc := range links {
		if loc == 0 {
			r.Fail(at+2+2*i, "NULL lookup offset")
			return nil, r.Err()
		}
		lookup, err := parseLookup(src, loc, extType)
		if err != nil {
			return nil, err
		}
		lookup.Index = i
		lookups[i] = lookup
	}
	tracer().Infof("%s lookup list has %d lookups", src.Tag(), n)
	return lookups, nil
}

func parseLookup(src Source, at int, extType LayoutTableLookupType) (LookupRecord, error) {
	r := src.Reader("Lookup")
	lookup := LookupRecord{
		Type: LayoutTableLookupType(r.U16(at)),
		Flag: LayoutTableLookupFlag(r.U16(at + 2)),
	}
	n := int(r.U16(at + 4))
	lookup.Subtables = r.Links16(at, at+6, n)
	if lookup.Flag&LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		lookup.MarkFilteringSet = Some(r.U16(at + 6 + 2*n))
	}
	if err := r.Err(); err != nil {
		return LookupRecord{}, err
	}
	if lookup.Type != extType {
		return lookup, nil
	}
	// resolve extension subtables
	r.Section("Extension")
	var resolved LayoutTableLookupType
	for i, loc := range lookup.Subtables {
		if loc == 0 {
			continue
		}
		format := r.U16(loc)
		typ := LayoutTableLookupType(r.U16(loc + 2))
		target := r.Link32(loc, loc+4)
		if err := r.Err(); err != nil {
			return LookupRecord{}, err
		}
		switch {
		case format != 1:
			r.FailFormat(loc, format)
		case typ == extType:
			r.Fail(loc, "nested extension subtable")
		case resolved != 0 && typ != resolved:
			r.Fail(loc, "extension subtables of different types")
		case target == 0:
			r.Fail(loc, "NULL extension offset")
		}
		if err := r.Err(); err != nil {
			return LookupRecord{}, err
		}
		resolved = typ
		lookup.Subtables[i] = target
	}
	if resolved != 0 {
		lookup.Type = resolved
	}
	return lookup, nil
}

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// ParseSequenceLookupRecords decodes n sequence lookup records starting at location at.
func ParseSequenceLookupRecords(src Source, at int, n int) ([]SequenceLookupRecord, error) {
	r := src.Reader("SequenceLookupRecord")
	a := r.U16s(at, 2*n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	records := make([]SequenceLookupRecord, n)
	for i := range records {
		records[i].SequenceIndex = a[2*i]
		records[i].LookupListIndex = a[2*i+1]
	}
	return records, nil
}
