package otlayout

import (
	"github.com/npillmayer/otglyph/ot"
)

// --- GSUB LookupType 1: Single Substitution --------------------------------

// Single substitution (SingleSubst) subtables tell a client to replace a single
// glyph with another glyph. Format 1 calculates the output glyph ID by adding a
// delta to the input glyph ID, format 2 lists the output glyph IDs.
type singleSubst struct {
	format      uint16
	coverage    ot.Coverage
	delta       int16           // format 1
	substitutes []ot.GlyphIndex // format 2, by coverage index
}

func parseSingleSubst(src ot.Source, at int) (subtable, error) {
	r := src.Reader("SingleSubst")
	format := r.U16(at)
	covLoc := r.Required16(at, at+2)
	sub := &singleSubst{format: format}
	switch format {
	case 1:
		sub.delta = r.S16(at + 4)
	case 2:
		n := int(r.U16(at + 4))
		sub.substitutes = r.Glyphs(at+6, n)
	default:
		r.FailFormat(at, format)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	var err error
	sub.coverage, err = ot.ParseCoverage(src, covLoc)
	return sub, err
}

func (sub *singleSubst) substitute(gid ot.GlyphIndex) (ot.GlyphIndex, bool) {
	inx, ok := sub.coverage.Match(gid)
	if !ok {
		return 0, false
	}
	if sub.format == 1 {
		// addition of delta is modulo 65536
		return ot.GlyphIndex(int(gid) + int(sub.delta)), true
	}
	if inx >= len(sub.substitutes) {
		return 0, false
	}
	return sub.substitutes[inx], true
}

func (sub *singleSubst) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	gid := line.glyphs[line.Idx].index
	subst, ok := sub.substitute(gid)
	if !ok {
		return false, false, nil
	}
	changed := substituteOneToOne(lt, line, gid, subst)
	line.Idx++
	return true, changed, nil
}

// substituteOneToOne replaces the glyph at the cursor, if the substitute
// differs from the glyph.
func substituteOneToOne(lt *LookupTable, line *GlyphLine, gid, subst ot.GlyphIndex) bool {
	if subst == gid {
		return false
	}
	tracer().Debugf("%s: substitute %d → %d", lt, gid, subst)
	line.SubstituteOneToOne(lt.reader.Glyph(subst))
	return true
}

// --- GSUB LookupType 2: Multiple Substitution ------------------------------

// A Multiple Substitution (MultipleSubst) subtable replaces a single glyph with
// more than one glyph, as when multiple glyphs replace a single ligature.
type multipleSubst struct {
	coverage  ot.Coverage
	sequences [][]ot.GlyphIndex // by coverage index
}

func parseMultipleSubst(src ot.Source, at int) (subtable, error) {
	cov, seqs, err := parseGlyphSequences(src, at, "MultipleSubst")
	if err != nil {
		return nil, err
	}
	return &multipleSubst{coverage: cov, sequences: seqs}, nil
}

// parseGlyphSequences decodes the common layout of MultipleSubst and
// AlternateSubst: a coverage and, per coverage index, a sequence of glyphs.
func parseGlyphSequences(src ot.Source, at int, section string) (ot.Coverage, [][]ot.GlyphIndex, error) {
	r := src.Reader(section)
	format := r.U16(at)
	if format != 1 && r.Err() == nil {
		r.FailFormat(at, format)
	}
	covLoc := r.Required16(at, at+2)
	n := int(r.U16(at + 4))
	links := r.Links16(at, at+6, n)
	if err := r.Err(); err != nil {
		return ot.Coverage{}, nil, err
	}
	seqs := make([][]ot.GlyphIndex, n)
	for i, loc := range links {
		if loc == 0 {
			continue
		}
		count := int(r.U16(loc))
		seqs[i] = r.Glyphs(loc+2, count)
	}
	if err := r.Err(); err != nil {
		return ot.Coverage{}, nil, err
	}
	cov, err := ot.ParseCoverage(src, covLoc)
	return cov, seqs, err
}

func (sub *multipleSubst) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	gid := line.glyphs[line.Idx].index
	inx, ok := sub.coverage.Match(gid)
	if !ok || inx >= len(sub.sequences) {
		return false, false, nil
	}
	seq := sub.sequences[inx]
	if len(seq) == 0 {
		line.Idx++
		return true, false, nil
	}
	if len(seq) == 1 {
		changed := substituteOneToOne(lt, line, gid, seq[0])
		line.Idx++
		return true, changed, nil
	}
	tracer().Debugf("%s: substitute %d → %v", lt, gid, seq)
	glyphs := make([]Glyph, len(seq))
	for i, g := range seq {
		glyphs[i] = lt.reader.Glyph(g)
	}
	line.SubstituteOneToMany(glyphs)
	line.Idx++
	return true, true, nil
}

// --- GSUB LookupType 3: Alternate Substitution -----------------------------

// An Alternate Substitution (AlternateSubst) subtable identifies any number of
// aesthetic alternatives from which a user can choose a glyph variant to
// replace the input glyph. There is no way to express a choice, thus the
// first alternate is always selected.
type alternateSubst struct {
	coverage   ot.Coverage
	alternates [][]ot.GlyphIndex // by coverage index
}

func parseAlternateSubst(src ot.Source, at int) (subtable, error) {
	cov, alts, err := parseGlyphSequences(src, at, "AlternateSubst")
	if err != nil {
		return nil, err
	}
	return &alternateSubst{coverage: cov, alternates: alts}, nil
}

func (sub *alternateSubst) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	gid := line.glyphs[line.Idx].index
	inx, ok := sub.coverage.Match(gid)
	if !ok || inx >= len(sub.alternates) || len(sub.alternates[inx]) == 0 {
		return false, false, nil
	}
	changed := substituteOneToOne(lt, line, gid, sub.alternates[inx][0])
	line.Idx++
	return true, changed, nil
}

// --- GSUB LookupType 4: Ligature Substitution ------------------------------

// A Ligature Substitution (LigatureSubst) subtable identifies ligature
// substitutions where a single glyph replaces multiple glyphs. The coverage
// holds the first glyph of each ligature; ligatures starting with the same
// glyph are tried in the order given by the font.
type ligatureSubst struct {
	coverage  ot.Coverage
	ligatures [][]ligature // by coverage index
}

type ligature struct {
	glyph      ot.GlyphIndex
	components []ot.GlyphIndex // without the first component
}

func parseLigatureSubst(src ot.Source, at int) (subtable, error) {
	r := src.Reader("LigatureSubst")
	format := r.U16(at)
	if format != 1 && r.Err() == nil {
		r.FailFormat(at, format)
	}
	covLoc := r.Required16(at, at+2)
	n := int(r.U16(at + 4))
	setLinks := r.Links16(at, at+6, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	sub := &ligatureSubst{ligatures: make([][]ligature, n)}
	for i, setLoc := range setLinks {
		if setLoc == 0 {
			continue
		}
		r.Section("LigatureSet")
		m := int(r.U16(setLoc))
		for _, ligLoc := range r.Links16(setLoc, setLoc+2, m) {
			if ligLoc == 0 {
				continue
			}
			r.Section("Ligature")
			lig := ligature{glyph: ot.GlyphIndex(r.U16(ligLoc))}
			if compCount := int(r.U16(ligLoc + 2)); compCount > 1 {
				lig.components = r.Glyphs(ligLoc+4, compCount-1)
			}
			sub.ligatures[i] = append(sub.ligatures[i], lig)
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
	}
	var err error
	sub.coverage, err = ot.ParseCoverage(src, covLoc)
	return sub, err
}

func (sub *ligatureSubst) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	gid := line.glyphs[line.Idx].index
	inx, ok := sub.coverage.Match(gid)
	if !ok || inx >= len(sub.ligatures) {
		return false, false, nil
	}
	for _, lig := range sub.ligatures[inx] {
		if !matchLigature(lt, line, lig) {
			continue
		}
		tracer().Debugf("%s: ligature %d%v → %d", lt, gid, lig.components, lig.glyph)
		line.SubstituteManyToOne(lt.reader, lt.Flag, len(lig.components), lt.reader.Glyph(lig.glyph))
		line.Idx++
		return true, true, nil
	}
	return false, false, nil
}

// matchLigature checks if the glyphs following the cursor match the
// remaining components of a ligature.
func matchLigature(lt *LookupTable, line *GlyphLine, lig ligature) bool {
	gidx := GlyphIndexer{Line: line, Idx: line.Idx}
	for _, c := range lig.components {
		if !gidx.NextGlyph(lt.reader, lt.Flag) || gidx.Glyph.index != c {
			return false
		}
	}
	return true
}
