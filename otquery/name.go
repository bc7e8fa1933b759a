package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/otglyph/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16      // not supported
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1 // not supported
	PlatformIDWindows   PlatformID = 3
)

type EncodingID uint16

const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDWindowsSymbol EncodingID = 0 // for now we will not support symbol fonts
	EncodingIDWindowsBMP    EncodingID = 1
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's `name` table.
//
// Only Unicode BMP and Windows BMP encodings are yielded, and malformed or
// out-of-bounds records are skipped.
func NamesRange(font Tables) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		src, ok := source(font, ot.T("name"))
		if !ok {
			return
		}
		r := src.Reader("name")
		count := int(r.U16(2))
		storage := int(r.U16(4))
		if r.Err() != nil {
			tracer().Debugf("name table too short")
			return
		}
		for i := range count {
			rec := nameHeaderSize + i*nameRecordSize
			key := nameKey{
				Platform: PlatformID(r.U16(rec)),
				Encoding: EncodingID(r.U16(rec + 2)),
				Language: r.U16(rec + 4),
				Name:     sfnt.NameID(r.U16(rec + 6)),
			}
			length, offset := int(r.U16(rec+8)), int(r.U16(rec+10))
			if r.Err() != nil {
				tracer().Debugf("name table record section out of bounds: count=%d", count)
				return
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			str := src.Reader("NameRecord")
			raw := str.Bytes(storage+offset, length)
			if str.Err() != nil || raw == nil {
				continue
			}
			value, err := decodeNameUTF16(raw)
			if err != nil || value == "" {
				continue
			}
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

// Name returns the first entry of the name table for a name ID.
func Name(font Tables, id sfnt.NameID) (string, bool) {
	for nid, value := range NamesRange(font) {
		if nid == id {
			return value, true
		}
	}
	return "", false
}

// NameInfo returns the family, subfamily, full name and version of a font,
// as far as present in the name table.
func NameInfo(font Tables) map[string]string {
	keys := map[sfnt.NameID]string{
		sfnt.NameIDFamily:    "family",
		sfnt.NameIDSubfamily: "subfamily",
		sfnt.NameIDFull:      "fullname",
		sfnt.NameIDVersion:   "version",
	}
	info := make(map[string]string, len(keys))
	for nid, value := range NamesRange(font) {
		if k, ok := keys[nid]; ok {
			if _, seen := info[k]; !seen {
				info[k] = value
			}
		}
	}
	return info
}

func isSupportedNameEncoding(key nameKey) bool {
	return (key.Platform == PlatformIDUnicode && key.Encoding == EncodingIDUnicodeBMP) ||
		(key.Platform == PlatformIDWindows && key.Encoding == EncodingIDWindowsBMP)
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	s, err := enc.NewDecoder().Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %w", err)
	}
	return string(s), nil
}
