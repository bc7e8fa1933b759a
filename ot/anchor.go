package ot

// Anchor is an attachment point of a glyph, in design units.
// Formats 2 and 3 of anchor tables carry additional contour-point or device
// data; only the design coordinates are decoded.
type Anchor struct {
	X, Y int16
}

// MarkRecord is an entry of a MarkArray: the class of a mark glyph and the
// anchor to attach it by.
type MarkRecord struct {
	Class  int
	Anchor *Anchor
}

// ParseAnchor decodes an anchor table at location at.
// Location 0 denotes an absent anchor and yields nil without error.
func ParseAnchor(src Source, at int) (*Anchor, error) {
	if at == 0 {
		return nil, nil
	}
	r := src.Reader("Anchor")
	format := r.U16(at)
	x, y := r.S16(at+2), r.S16(at+4)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if format < 1 || format > 3 {
		r.FailFormat(at, format)
		return nil, r.Err()
	}
	return &Anchor{X: x, Y: y}, nil
}

// ParseMarkArray decodes a MarkArray table at location at. The result holds one
// MarkRecord per coverage index of the mark coverage the array belongs to.
func ParseMarkArray(src Source, at int) ([]MarkRecord, error) {
	r := src.Reader("MarkArray")
	n := int(r.U16(at))
	if err := r.Err(); err != nil {
		return nil, err
	}
	marks := make([]MarkRecord, n)
	for i := range marks {
		rec := at + 2 + 4*i
		marks[i].Class = int(r.U16(rec))
		anchorLoc := r.Link16(at, rec+2)
		if err := r.Err(); err != nil {
			return nil, err
		}
		a, err := ParseAnchor(src, anchorLoc)
		if err != nil {
			return nil, err
		}
		marks[i].Anchor = a
	}
	return marks, nil
}

// ParseBaseArray decodes a BaseArray table at location at. The result is indexed
// by base coverage index, then by mark class. Entries for classes without an
// anchor are nil.
func ParseBaseArray(src Source, at int, classCount int) ([][]*Anchor, error) {
	r := src.Reader("BaseArray")
	n := int(r.U16(at))
	if err := r.Err(); err != nil {
		return nil, err
	}
	bases := make([][]*Anchor, n)
	for i := range bases {
		links := r.Links16(at, at+2+2*classCount*i, classCount)
		if err := r.Err(); err != nil {
			return nil, err
		}
		anchors, err := parseAnchors(src, links, classCount)
		if err != nil {
			return nil, err
		}
		bases[i] = anchors
	}
	return bases, nil
}

// ParseLigatureArray decodes a LigatureArray table at location at. The result is
// indexed by ligature coverage index, then by ligature component, then by mark
// class. Entries for classes without an anchor are nil.
func ParseLigatureArray(src Source, at int, classCount int) ([][][]*Anchor, error) {
	r := src.Reader("LigatureArray")
	n := int(r.U16(at))
	attach := r.Links16(at, at+2, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	ligatures := make([][][]*Anchor, n)
	for i, loc := range attach {
		if loc == 0 {
			continue
		}
		r.Section("LigatureAttach")
		compCount := int(r.U16(loc))
		if err := r.Err(); err != nil {
			return nil, err
		}
		components := make([][]*Anchor, compCount)
		for c := range components {
			links := r.Links16(loc, loc+2+2*classCount*c, classCount)
			if err := r.Err(); err != nil {
				return nil, err
			}
			anchors, err := parseAnchors(src, links, classCount)
			if err != nil {
				return nil, err
			}
			components[c] = anchors
		}
		ligatures[i] = components
	}
	return ligatures, nil
}

func parseAnchors(src Source, links []int, classCount int) ([]*Anchor, error) {
	anchors := make([]*Anchor, classCount)
	for j, loc := range links {
		a, err := ParseAnchor(src, loc)
		if err != nil {
			return nil, err
		}
		anchors[j] = a
	}
	return anchors, nil
}
