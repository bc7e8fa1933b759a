package ot

import (
	"errors"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Source ----------------------------------------------------------------

// Source is the byte source of a single font table, e.g. GSUB.
// Locations handed to decoders are absolute byte positions within the table.
// A Source never changes after construction.
type Source struct {
	tag  Tag
	data binarySegm
}

// NewSource wraps the bytes of the table with the given tag.
// The bytes must not be modified while the Source is in use.
func NewSource(tag Tag, b []byte) Source {
	return Source{tag: tag, data: b}
}

// Tag returns the tag of the table this source reads from.
func (src Source) Tag() Tag {
	return src.tag
}

// Size returns the number of bytes in the table.
func (src Source) Size() int {
	return len(src.data)
}

// Reader returns a field reader for a structure of the table.
// section names the structure for error messages.
func (src Source) Reader(section string) *Reader {
	return &Reader{src: src, section: section}
}

// Reader reads big-endian fields from a Source. It remembers the first error
// encountered; subsequent reads return zero values. This lets decoders read a
// complete header and check for errors once.
type Reader struct {
	src     Source
	section string
	err     error
}

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Section changes the structure name used in error messages.
func (r *Reader) Section(section string) *Reader {
	r.section = section
	return r
}

// FailFormat records an unknown-format error for a format number read at location at.
func (r *Reader) FailFormat(at int, format uint16) {
	if r.err == nil {
		r.err = errFormat(r.src.tag, r.section, at, format)
	}
}

// Fail records an error for an inconsistent structure at location at.
func (r *Reader) Fail(at int, issue string) {
	if r.err == nil {
		r.err = errInvalid(r.src.tag, r.section, at, issue)
	}
}

func (r *Reader) truncated(at int) {
	if r.err == nil {
		r.err = errTruncated(r.src.tag, r.section, at)
	}
}

// U16 reads an unsigned 16-bit value at location at.
func (r *Reader) U16(at int) uint16 {
	if r.err != nil {
		return 0
	}
	n, err := r.src.data.u16(at)
	if err != nil {
		r.truncated(at)
	}
	return n
}

// S16 reads a signed 16-bit value at location at.
func (r *Reader) S16(at int) int16 {
	return int16(r.U16(at))
}

// U32 reads an unsigned 32-bit value at location at.
func (r *Reader) U32(at int) uint32 {
	if r.err != nil {
		return 0
	}
	n, err := r.src.data.u32(at)
	if err != nil {
		r.truncated(at)
	}
	return n
}

// Link16 reads a 16-bit offset at location at and resolves it against base.
// A NULL offset yields location 0.
func (r *Reader) Link16(base, at int) int {
	off := r.U16(at)
	if off == 0 {
		return 0
	}
	return base + int(off)
}

// Required16 is like Link16, but a NULL offset is an error.
func (r *Reader) Required16(base, at int) int {
	loc := r.Link16(base, at)
	if loc == 0 && r.err == nil {
		r.Fail(at, "NULL offset to required "+r.section+" structure")
	}
	return loc
}

// Link32 reads a 32-bit offset at location at and resolves it against base.
// A NULL offset yields location 0.
func (r *Reader) Link32(base, at int) int {
	off := r.U32(at)
	if off == 0 {
		return 0
	}
	return base + int(off)
}

// U16s reads an array of n unsigned 16-bit values starting at location at.
func (r *Reader) U16s(at, n int) []uint16 {
	if r.err != nil || n <= 0 {
		return nil
	}
	buf, err := r.src.data.view(at, 2*n)
	if err != nil {
		r.truncated(at)
		return nil
	}
	a := make([]uint16, n)
	for i := range a {
		a[i] = u16(buf[2*i:])
	}
	return a
}

// Glyphs reads an array of n glyph IDs starting at location at.
func (r *Reader) Glyphs(at, n int) []GlyphIndex {
	a := r.U16s(at, n)
	if a == nil {
		return nil
	}
	glyphs := make([]GlyphIndex, len(a))
	for i, g := range a {
		glyphs[i] = GlyphIndex(g)
	}
	return glyphs
}

// Links16 reads an array of n 16-bit offsets starting at location at, resolved against base.
// NULL offsets yield location 0.
func (r *Reader) Links16(base, at, n int) []int {
	a := r.U16s(at, n)
	if a == nil {
		return nil
	}
	links := make([]int, len(a))
	for i, off := range a {
		if off != 0 {
			links[i] = base + int(off)
		}
	}
	return links
}

// Bytes returns n bytes starting at location at. The slice shares memory
// with the table.
func (r *Reader) Bytes(at, n int) []byte {
	if r.err != nil || n <= 0 {
		return nil
	}
	buf, err := r.src.data.view(at, n)
	if err != nil {
		r.truncated(at)
		return nil
	}
	return buf
}
