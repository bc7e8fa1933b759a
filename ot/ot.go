package ot

import "fmt"

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table directory -------------------------------------------------------

// ParseTableDirectory reads the table directory of an SFNT font binary and
// returns the bytes of every table, keyed by table tag. The returned slices
// share memory with font.
//
// Font collections are not supported.
func ParseTableDirectory(font []byte) (map[Tag][]byte, error) {
	src := NewSource(0, font)
	r := src.Reader("OffsetTable")
	fontType := r.U32(0)
	count := int(r.U16(4))
	if err := r.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("font type = %x, %d tables", fontType, count)
	if !(fontType == 0x4f54544f || // OTTO
		fontType == 0x00010000 || // TrueType
		fontType == 0x74727565) { // true
		return nil, errInvalid(0, "OffsetTable", 0, fmt.Sprintf("font type not supported: %x", fontType))
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tables := make(map[Tag][]byte, count)
	r.Section("TableRecord")
	for i, prevTag := 0, Tag(0); i < count; i++ {
		at := 12 + 16*i
		tag := Tag(r.U32(at))
		off, size := int(r.U32(at+8)), int(r.U32(at+12))
		if err := r.Err(); err != nil {
			return nil, err
		}
		if tag < prevTag {
			return nil, errInvalid(tag, "TableRecord", at, "table order")
		}
		prevTag = tag
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, errInvalid(tag, "TableRecord", at, "invalid table offset")
		}
		if off < 0 || size < 0 || off+size > len(font) {
			return nil, errTruncated(tag, "TableRecord", off)
		}
		tables[tag] = font[off : off+size]
	}
	return tables, nil
}
