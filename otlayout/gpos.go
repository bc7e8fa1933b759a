package otlayout

import (
	"github.com/npillmayer/otglyph/ot"
)

// --- GPOS LookupType 4: Mark-to-Base Attachment Positioning ----------------

// The MarkToBase attachment (MarkBasePos) subtable is used to position combining
// mark glyphs with respect to base glyphs. Both mark and base glyphs carry
// anchors; the mark is moved so that its anchor lines up with the base's
// anchor for the mark's class.
type markToBase struct {
	markCoverage ot.Coverage
	baseCoverage ot.Coverage
	marks        []ot.MarkRecord // by mark coverage index
	bases        [][]*ot.Anchor  // by base coverage index, then mark class
}

func parseMarkToBase(src ot.Source, at int) (subtable, error) {
	r := src.Reader("MarkBasePos")
	format := r.U16(at)
	if format != 1 && r.Err() == nil {
		r.FailFormat(at, format)
	}
	markCovLoc := r.Required16(at, at+2)
	baseCovLoc := r.Required16(at, at+4)
	classCount := int(r.U16(at + 6))
	markArrayLoc := r.Required16(at, at+8)
	baseArrayLoc := r.Required16(at, at+10)
	if err := r.Err(); err != nil {
		return nil, err
	}
	sub := &markToBase{}
	var err error
	if sub.markCoverage, err = ot.ParseCoverage(src, markCovLoc); err != nil {
		return nil, err
	}
	if sub.baseCoverage, err = ot.ParseCoverage(src, baseCovLoc); err != nil {
		return nil, err
	}
	if sub.marks, err = ot.ParseMarkArray(src, markArrayLoc); err != nil {
		return nil, err
	}
	if sub.bases, err = ot.ParseBaseArray(src, baseArrayLoc, classCount); err != nil {
		return nil, err
	}
	return sub, nil
}

func (sub *markToBase) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	mark, ok := markRecordAt(line, sub.markCoverage, sub.marks)
	if !ok {
		return false, false, nil
	}
	baseIdx, ok := findBase(lt, line, sub.markCoverage)
	if !ok {
		return false, false, nil
	}
	inx, ok := sub.baseCoverage.Match(line.glyphs[baseIdx].index)
	if !ok || inx >= len(sub.bases) {
		return false, false, nil
	}
	baseAnchor := anchorForClass(sub.bases[inx], mark.Class)
	if baseAnchor == nil {
		return false, false, nil
	}
	attachMark(lt, line, mark.Anchor, baseAnchor, baseIdx)
	return true, true, nil
}

// --- GPOS LookupType 5: Mark-to-Ligature Attachment Positioning ------------

// The MarkToLigature attachment (MarkLigPos) subtable is used to position
// combining mark glyphs with respect to ligature base glyphs. Ligatures carry
// anchors per component and mark class. As the engine does not know which
// component a mark belongs to, the first component with an anchor for the
// mark's class is used.
type markToLigature struct {
	markCoverage     ot.Coverage
	ligatureCoverage ot.Coverage
	marks            []ot.MarkRecord  // by mark coverage index
	ligatures        [][][]*ot.Anchor // by ligature coverage index, component, mark class
}

func parseMarkToLigature(src ot.Source, at int) (subtable, error) {
	r := src.Reader("MarkLigPos")
	format := r.U16(at)
	if format != 1 && r.Err() == nil {
		r.FailFormat(at, format)
	}
	markCovLoc := r.Required16(at, at+2)
	ligCovLoc := r.Required16(at, at+4)
	classCount := int(r.U16(at + 6))
	markArrayLoc := r.Required16(at, at+8)
	ligArrayLoc := r.Required16(at, at+10)
	if err := r.Err(); err != nil {
		return nil, err
	}
	sub := &markToLigature{}
	var err error
	if sub.markCoverage, err = ot.ParseCoverage(src, markCovLoc); err != nil {
		return nil, err
	}
	if sub.ligatureCoverage, err = ot.ParseCoverage(src, ligCovLoc); err != nil {
		return nil, err
	}
	if sub.marks, err = ot.ParseMarkArray(src, markArrayLoc); err != nil {
		return nil, err
	}
	if sub.ligatures, err = ot.ParseLigatureArray(src, ligArrayLoc, classCount); err != nil {
		return nil, err
	}
	return sub, nil
}

func (sub *markToLigature) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	mark, ok := markRecordAt(line, sub.markCoverage, sub.marks)
	if !ok {
		return false, false, nil
	}
	ligIdx, ok := findBase(lt, line, sub.markCoverage)
	if !ok {
		return false, false, nil
	}
	inx, ok := sub.ligatureCoverage.Match(line.glyphs[ligIdx].index)
	if !ok || inx >= len(sub.ligatures) {
		return false, false, nil
	}
	var ligAnchor *ot.Anchor
	for _, component := range sub.ligatures[inx] {
		if ligAnchor = anchorForClass(component, mark.Class); ligAnchor != nil {
			break
		}
	}
	if ligAnchor == nil {
		return false, false, nil
	}
	attachMark(lt, line, mark.Anchor, ligAnchor, ligIdx)
	return true, true, nil
}

// --- Helpers ---------------------------------------------------------------

// markRecordAt returns the mark record for the glyph at the cursor.
func markRecordAt(line *GlyphLine, markCoverage ot.Coverage, marks []ot.MarkRecord) (ot.MarkRecord, bool) {
	inx, ok := markCoverage.Match(line.glyphs[line.Idx].index)
	if !ok || inx >= len(marks) || marks[inx].Anchor == nil {
		return ot.MarkRecord{}, false
	}
	return marks[inx], true
}

// findBase searches backwards from the cursor for the nearest glyph not
// ignored by the lookup and not covered as a mark.
func findBase(lt *LookupTable, line *GlyphLine, markCoverage ot.Coverage) (int, bool) {
	gidx := GlyphIndexer{Line: line, Idx: line.Idx}
	for gidx.PreviousGlyph(lt.reader, lt.Flag) {
		if !markCoverage.Contains(gidx.Glyph.index) {
			return gidx.Idx, true
		}
	}
	return -1, false
}

func anchorForClass(anchors []*ot.Anchor, class int) *ot.Anchor {
	if class < 0 || class >= len(anchors) {
		return nil
	}
	return anchors[class]
}

// attachMark moves the mark at the cursor by the difference of the mark's
// anchor and the base's anchor, links it to the base and advances the cursor.
func attachMark(lt *LookupTable, line *GlyphLine, markAnchor, baseAnchor *ot.Anchor, baseIdx int) {
	dx := int(markAnchor.X) - int(baseAnchor.X)
	dy := int(markAnchor.Y) - int(baseAnchor.Y)
	mark := line.glyphs[line.Idx]
	tracer().Debugf("%s: attach mark %d to glyph %d at position %d, Δ = (%d,%d)",
		lt, mark.index, line.glyphs[baseIdx].index, baseIdx, dx, dy)
	line.glyphs[line.Idx] = mark.Positioned(dx, dy, 0, 0, baseIdx-line.Idx)
	line.Idx++
}
