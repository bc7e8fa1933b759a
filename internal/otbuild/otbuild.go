/*
Package otbuild assembles OpenType layout tables from a tree of nodes.
It is used by tests to synthesize GSUB, GPOS and GDEF tables without
shipping binary font files.

A Node is a sequence of big-endian fields. Offset fields point to child
nodes; children are serialized after their parent and offsets are computed
relative to the start of the parent, which is how OpenType relates most
offsets to the structure containing them.

	cov := otbuild.Coverage1(5, 6)
	sub := otbuild.New().U16(1).Off16(cov).S16(3) // SingleSubst format 1
*/
package otbuild

import (
	"encoding/binary"
	"sort"
)

type fieldKind int8

const (
	u16Field fieldKind = iota
	u32Field
	off16Field
	off32Field
)

type field struct {
	kind  fieldKind
	value uint32
	child *Node
}

// Node is a structure of an OpenType table under construction.
type Node struct {
	fields []field
}

// New creates an empty node.
func New() *Node {
	return &Node{}
}

// U16 appends unsigned 16-bit fields.
func (n *Node) U16(v ...uint16) *Node {
	for _, x := range v {
		n.fields = append(n.fields, field{kind: u16Field, value: uint32(x)})
	}
	return n
}

// S16 appends signed 16-bit fields.
func (n *Node) S16(v ...int16) *Node {
	for _, x := range v {
		n.fields = append(n.fields, field{kind: u16Field, value: uint32(uint16(x))})
	}
	return n
}

// U32 appends unsigned 32-bit fields.
func (n *Node) U32(v ...uint32) *Node {
	for _, x := range v {
		n.fields = append(n.fields, field{kind: u32Field, value: x})
	}
	return n
}

// Tag appends a 4-byte tag.
func (n *Node) Tag(t string) *Node {
	b := []byte((t + "    ")[:4])
	return n.U32(binary.BigEndian.Uint32(b))
}

// Off16 appends a 16-bit offset to child. A nil child yields a NULL offset.
func (n *Node) Off16(child *Node) *Node {
	n.fields = append(n.fields, field{kind: off16Field, child: child})
	return n
}

// Off32 appends a 32-bit offset to child. A nil child yields a NULL offset.
func (n *Node) Off32(child *Node) *Node {
	n.fields = append(n.fields, field{kind: off32Field, child: child})
	return n
}

// Bytes serializes the node and all of its descendants.
func (n *Node) Bytes() []byte {
	var out []byte
	n.write(&out)
	return out
}

func (n *Node) write(out *[]byte) {
	start := len(*out)
	type patch struct {
		at    int
		wide  bool
		child *Node
	}
	var patches []patch
	for _, f := range n.fields {
		switch f.kind {
		case u16Field:
			*out = binary.BigEndian.AppendUint16(*out, uint16(f.value))
		case u32Field:
			*out = binary.BigEndian.AppendUint32(*out, f.value)
		case off16Field:
			patches = append(patches, patch{at: len(*out), child: f.child})
			*out = append(*out, 0, 0)
		case off32Field:
			patches = append(patches, patch{at: len(*out), wide: true, child: f.child})
			*out = append(*out, 0, 0, 0, 0)
		}
	}
	for _, p := range patches {
		if p.child == nil {
			continue
		}
		off := len(*out) - start
		p.child.write(out)
		if p.wide {
			binary.BigEndian.PutUint32((*out)[p.at:], uint32(off))
		} else {
			binary.BigEndian.PutUint16((*out)[p.at:], uint16(off))
		}
	}
}

// --- Common structures -----------------------------------------------------

// Coverage1 creates a coverage table of format 1.
func Coverage1(glyphs ...uint16) *Node {
	return New().U16(1, uint16(len(glyphs))).U16(glyphs...)
}

// Range is a glyph range record of coverage or class definition tables.
// Value is the start coverage index or the class, respectively.
type Range struct {
	From, To, Value uint16
}

// Coverage2 creates a coverage table of format 2.
func Coverage2(ranges ...Range) *Node {
	n := New().U16(2, uint16(len(ranges)))
	for _, r := range ranges {
		n.U16(r.From, r.To, r.Value)
	}
	return n
}

// ClassDef1 creates a class definition table of format 1.
func ClassDef1(start uint16, classes ...uint16) *Node {
	return New().U16(1, start, uint16(len(classes))).U16(classes...)
}

// ClassDef2 creates a class definition table of format 2.
func ClassDef2(ranges ...Range) *Node {
	n := New().U16(2, uint16(len(ranges)))
	for _, r := range ranges {
		n.U16(r.From, r.To, r.Value)
	}
	return n
}

// ClassDefMap creates a class definition table of format 2 from a map
// glyph → class.
func ClassDefMap(classes map[uint16]uint16) *Node {
	glyphs := make([]int, 0, len(classes))
	for g := range classes {
		glyphs = append(glyphs, int(g))
	}
	sort.Ints(glyphs)
	ranges := make([]Range, len(glyphs))
	for i, g := range glyphs {
		ranges[i] = Range{From: uint16(g), To: uint16(g), Value: classes[uint16(g)]}
	}
	return ClassDef2(ranges...)
}

// Anchor creates an anchor table of format 1.
func Anchor(x, y int16) *Node {
	return New().U16(1).S16(x, y)
}

// Lookup creates a lookup table with the given subtables.
func Lookup(typ, flag uint16, subtables ...*Node) *Node {
	n := New().U16(typ, flag, uint16(len(subtables)))
	for _, sub := range subtables {
		n.Off16(sub)
	}
	return n
}

// Extension creates an extension subtable (format 1) wrapping a subtable of type typ.
func Extension(typ uint16, subtable *Node) *Node {
	return New().U16(1, typ).Off32(subtable)
}

// LookupList creates a lookup list.
func LookupList(lookups ...*Node) *Node {
	n := New().U16(uint16(len(lookups)))
	for _, l := range lookups {
		n.Off16(l)
	}
	return n
}

// Layout creates a GSUB or GPOS table (version 1.0).
func Layout(scriptList, featureList, lookupList *Node) *Node {
	return New().U16(1, 0).Off16(scriptList).Off16(featureList).Off16(lookupList)
}

// LayoutWithLookups creates a GSUB or GPOS table with empty script and feature
// lists and the given lookups.
func LayoutWithLookups(lookups ...*Node) *Node {
	return Layout(New().U16(0), New().U16(0), LookupList(lookups...))
}

// GDef creates a GDEF table (version 1.0) with optional glyph class and mark
// attachment class definitions.
func GDef(glyphClasses, markAttachClasses *Node) *Node {
	return New().U16(1, 0).Off16(glyphClasses).Off16(nil).Off16(nil).Off16(markAttachClasses)
}

// --- Font container --------------------------------------------------------

// Font wraps tables into an SFNT container with a TrueType header.
// Checksums are not computed.
func Font(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for t := range tables {
		tags = append(tags, (t + "    ")[:4])
	}
	sort.Strings(tags)
	n := len(tags)
	out := binary.BigEndian.AppendUint32(nil, 0x00010000)
	out = binary.BigEndian.AppendUint16(out, uint16(n))
	out = append(out, 0, 0, 0, 0, 0, 0) // searchRange, entrySelector, rangeShift
	dir := len(out)
	out = append(out, make([]byte, 16*n)...)
	for i, t := range tags {
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		data := tables[t]
		if data == nil {
			data = tables[trimTag(t)]
		}
		rec := out[dir+16*i:]
		copy(rec, t)
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		out = append(out, data...)
	}
	return out
}

func trimTag(t string) string {
	for len(t) > 0 && t[len(t)-1] == ' ' {
		t = t[:len(t)-1]
	}
	return t
}
