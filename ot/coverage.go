package ot

// Maximum reasonable counts for OpenType table structures.
// Tables exceeding these limits are rejected as malformed.
const (
	MaxScriptCount   = 50    // Scripts: typically < 10
	MaxFeatureCount  = 500   // Features: typically < 200
	MaxLookupCount   = 1000  // Lookups: typically < 100
	MaxCoverageCount = 65535 // Coverage tables
	MaxClassDefCount = 65535 // Class definitions
)

// Coverage is the decoded form of an OpenType coverage table.
//
// A Coverage table defines a unique index value, the Coverage Index, for each
// covered glyph. Many structures of layout tables are arrays parallel to a
// coverage table, indexed by coverage index.
type Coverage struct {
	glyphs []GlyphIndex       // ordered by coverage index
	index  map[GlyphIndex]int // glyph → coverage index
}

// Match returns the coverage index of glyph g and true, if g is covered.
// If g is not covered, Match returns 0 and false.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	inx, ok := c.index[g]
	return inx, ok
}

// Contains is a shortcut for Match, discarding the coverage index.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.index[g]
	return ok
}

// Len returns the number of covered glyphs.
func (c Coverage) Len() int {
	return len(c.glyphs)
}

// Glyphs returns the covered glyphs in coverage index order.
func (c Coverage) Glyphs() []GlyphIndex {
	g := make([]GlyphIndex, len(c.glyphs))
	copy(g, c.glyphs)
	return g
}

// ParseCoverage decodes a coverage table at location at.
// Coverage tables come in two formats: format 1 lists the covered glyphs,
// format 2 lists ranges of glyphs, each with the coverage index of its
// first glyph.
func ParseCoverage(src Source, at int) (Coverage, error) {
	r := src.Reader("Coverage")
	format := r.U16(at)
	count := int(r.U16(at + 2))
	if err := r.Err(); err != nil {
		return Coverage{}, err
	}
	tracer().Debugf("coverage header format %d has count = %d ", format, count)
	cov := Coverage{index: make(map[GlyphIndex]int)}
	switch format {
	case 1:
		cov.glyphs = r.Glyphs(at+4, count)
		for i, g := range cov.glyphs {
			if _, dup := cov.index[g]; !dup {
				cov.index[g] = i
			}
		}
	case 2:
		total := 0
		for i := 0; i < count && r.Err() == nil; i++ {
			rec := at + 4 + 6*i
			from, to := int(r.U16(rec)), int(r.U16(rec+2))
			start := int(r.U16(rec + 4))
			if r.Err() != nil {
				break
			}
			if to < from {
				r.Fail(rec, "coverage range end before start")
				break
			}
			if total += to - from + 1; total > MaxCoverageCount {
				r.Fail(rec, "coverage too large")
				break
			}
			for g := from; g <= to; g++ {
				glyph := GlyphIndex(g)
				cov.glyphs = append(cov.glyphs, glyph)
				if _, dup := cov.index[glyph]; !dup {
					cov.index[glyph] = start + g - from
				}
			}
		}
	default:
		r.FailFormat(at, format)
	}
	if err := r.Err(); err != nil {
		return Coverage{}, err
	}
	return cov, nil
}
