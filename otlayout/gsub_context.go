package otlayout

import (
	"github.com/npillmayer/otglyph/ot"
)

// --- GSUB LookupType 5: Contextual Substitution ----------------------------

// A Contextual Substitution subtable describes glyph sequences in context and
// actions to perform on them. Actions are references to other lookups, to be
// applied at a position within the matched sequence.
//
// Three formats exist, differing in how the input sequence is described:
// by glyph IDs (format 1), by glyph classes (format 2) or by coverage tables
// per position (format 3). They share the way actions are applied.
type contextSubst struct {
	rules contextRuleSource
}

// contextRuleSource selects the candidate rules for the first glyph of a
// context. Candidates are tried in order.
type contextRuleSource interface {
	rulesFor(gid ot.GlyphIndex) []contextRule
}

// contextRule is an input sequence with actions. Position 0 of the sequence
// is the glyph at the cursor, which has already been checked by the rule
// source.
type contextRule struct {
	length  int
	input   sequenceMatcher
	actions []ot.SequenceLookupRecord
}

// sequenceMatcher checks glyph gid at position i > 0 of an input sequence.
type sequenceMatcher interface {
	matchesAt(i int, gid ot.GlyphIndex) bool
}

type glyphSequence []ot.GlyphIndex // positions 1…n

func (seq glyphSequence) matchesAt(i int, gid ot.GlyphIndex) bool {
	return seq[i-1] == gid
}

type classSequence struct {
	classes  []int // positions 1…n
	classDef ot.ClassDefinitions
}

func (seq classSequence) matchesAt(i int, gid ot.GlyphIndex) bool {
	return seq.classes[i-1] == seq.classDef.Class(gid)
}

type coverageSequence []ot.Coverage // positions 0…n

func (seq coverageSequence) matchesAt(i int, gid ot.GlyphIndex) bool {
	return seq[i].Contains(gid)
}

// Format 1: rule sets by coverage index of the first glyph.
type contextFormat1 struct {
	coverage ot.Coverage
	ruleSets [][]contextRule
}

func (f *contextFormat1) rulesFor(gid ot.GlyphIndex) []contextRule {
	if inx, ok := f.coverage.Match(gid); ok && inx < len(f.ruleSets) {
		return f.ruleSets[inx]
	}
	return nil
}

// Format 2: rule sets by class of the first glyph.
type contextFormat2 struct {
	coverage ot.Coverage
	classDef ot.ClassDefinitions
	ruleSets [][]contextRule
}

func (f *contextFormat2) rulesFor(gid ot.GlyphIndex) []contextRule {
	if !f.coverage.Contains(gid) {
		return nil
	}
	if class := f.classDef.Class(gid); class < len(f.ruleSets) {
		return f.ruleSets[class]
	}
	return nil
}

// Format 3: a single rule.
type contextFormat3 struct {
	rule contextRule
}

func (f *contextFormat3) rulesFor(gid ot.GlyphIndex) []contextRule {
	if f.rule.input.matchesAt(0, gid) {
		return []contextRule{f.rule}
	}
	return nil
}

func parseContextSubst(src ot.Source, at int) (subtable, error) {
	r := src.Reader("SequenceContext")
	format := r.U16(at)
	if err := r.Err(); err != nil {
		return nil, err
	}
	var rules contextRuleSource
	var err error
	switch format {
	case 1:
		rules, err = parseContextFormat1(src, at)
	case 2:
		rules, err = parseContextFormat2(src, at)
	case 3:
		rules, err = parseContextFormat3(src, at)
	default:
		r.FailFormat(at, format)
		err = r.Err()
	}
	if err != nil {
		return nil, err
	}
	return &contextSubst{rules: rules}, nil
}

func parseContextFormat1(src ot.Source, at int) (contextRuleSource, error) {
	f := &contextFormat1{}
	r := src.Reader("SequenceContextFormat1")
	covLoc := r.Required16(at, at+2)
	n := int(r.U16(at + 4))
	links := r.Links16(at, at+6, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	var err error
	if f.coverage, err = ot.ParseCoverage(src, covLoc); err != nil {
		return nil, err
	}
	f.ruleSets = make([][]contextRule, n)
	for i, loc := range links {
		if f.ruleSets[i], err = parseRuleSet(src, loc, func(input []uint16) sequenceMatcher {
			seq := make(glyphSequence, len(input))
			for j, g := range input {
				seq[j] = ot.GlyphIndex(g)
			}
			return seq
		}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseContextFormat2(src ot.Source, at int) (contextRuleSource, error) {
	f := &contextFormat2{}
	r := src.Reader("SequenceContextFormat2")
	covLoc := r.Required16(at, at+2)
	classLoc := r.Required16(at, at+4)
	n := int(r.U16(at + 6))
	links := r.Links16(at, at+8, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	var err error
	if f.coverage, err = ot.ParseCoverage(src, covLoc); err != nil {
		return nil, err
	}
	if f.classDef, err = ot.ParseClassDefinitions(src, classLoc); err != nil {
		return nil, err
	}
	f.ruleSets = make([][]contextRule, n)
	for i, loc := range links {
		if f.ruleSets[i], err = parseRuleSet(src, loc, func(input []uint16) sequenceMatcher {
			seq := classSequence{classes: make([]int, len(input)), classDef: f.classDef}
			for j, c := range input {
				seq.classes[j] = int(c)
			}
			return seq
		}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// parseRuleSet decodes a SequenceRuleSet or ClassSequenceRuleSet at location
// at. Both share a layout and differ in the interpretation of the input
// sequence only. A NULL rule set yields no rules.
func parseRuleSet(src ot.Source, at int, makeInput func([]uint16) sequenceMatcher) ([]contextRule, error) {
	if at == 0 {
		return nil, nil
	}
	r := src.Reader("SequenceRuleSet")
	n := int(r.U16(at))
	links := r.Links16(at, at+2, n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	rules := make([]contextRule, 0, n)
	r.Section("SequenceRule")
	for _, loc := range links {
		if loc == 0 {
			continue
		}
		glyphCount := int(r.U16(loc))
		actionCount := int(r.U16(loc + 2))
		if glyphCount == 0 && r.Err() == nil {
			r.Fail(loc, "empty input sequence")
		}
		input := r.U16s(loc+4, glyphCount-1)
		if err := r.Err(); err != nil {
			return nil, err
		}
		actions, err := ot.ParseSequenceLookupRecords(src, loc+4+2*(glyphCount-1), actionCount)
		if err != nil {
			return nil, err
		}
		rules = append(rules, contextRule{
			length:  glyphCount,
			input:   makeInput(input),
			actions: actions,
		})
	}
	return rules, nil
}

func parseContextFormat3(src ot.Source, at int) (contextRuleSource, error) {
	r := src.Reader("SequenceContextFormat3")
	glyphCount := int(r.U16(at + 2))
	actionCount := int(r.U16(at + 4))
	if glyphCount == 0 && r.Err() == nil {
		r.Fail(at, "empty input sequence")
	}
	links := r.Links16(at, at+6, glyphCount)
	for i, loc := range links {
		if loc == 0 {
			r.Fail(at+6+2*i, "NULL input coverage offset")
			break
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	seq := make(coverageSequence, glyphCount)
	for i, loc := range links {
		cov, err := ot.ParseCoverage(src, loc)
		if err != nil {
			return nil, err
		}
		seq[i] = cov
	}
	actions, err := ot.ParseSequenceLookupRecords(src, at+6+2*glyphCount, actionCount)
	if err != nil {
		return nil, err
	}
	return &contextFormat3{rule: contextRule{length: glyphCount, input: seq, actions: actions}}, nil
}

// --- Application -----------------------------------------------------------

func (sub *contextSubst) apply(lt *LookupTable, line *GlyphLine, depth int) (bool, bool, error) {
	gid := line.glyphs[line.Idx].index
	for _, rule := range sub.rules.rulesFor(gid) {
		if last, ok := matchContext(lt, line, rule); ok {
			changed, err := applyContextActions(lt, line, rule, last, depth)
			return true, changed, err
		}
	}
	return false, false, nil
}

// matchContext checks the input sequence of rule against the glyphs at and
// after the cursor, stepping over glyphs ignored by the lookup. It returns
// the position of the last glyph of the matched context.
func matchContext(lt *LookupTable, line *GlyphLine, rule contextRule) (int, bool) {
	gidx := GlyphIndexer{Line: line, Idx: line.Idx}
	for i := 1; i < rule.length; i++ {
		if !gidx.NextGlyph(lt.reader, lt.Flag) || !rule.input.matchesAt(i, gidx.Glyph.index) {
			return -1, false
		}
	}
	return gidx.Idx, true
}

// applyContextActions executes the actions of a matched rule. While the
// actions run, the window of line is narrowed to the matched context
// [Idx, last]. Each action positions the cursor by stepping sequenceIndex
// non-ignored glyphs from the start of the context and applies the referenced
// lookup once. Afterwards the cursor is placed after the context, and the
// window is restored, corrected by the number of glyphs nested lookups
// have inserted or removed.
func applyContextActions(lt *LookupTable, line *GlyphLine, rule contextRule, last int, depth int) (bool, error) {
	oldStart, oldEnd := line.Start, line.End
	initial := line.Idx
	line.Start, line.End = initial, last+1
	endBefore := line.End
	changed := false
	var err error
	for _, action := range rule.actions {
		gidx := GlyphIndexer{Line: line, Idx: initial}
		for i := 0; i < int(action.SequenceIndex); i++ {
			gidx.NextGlyph(lt.reader, lt.Flag)
		}
		if gidx.Idx >= line.End {
			tracer().Debugf("%s: sequence index %d beyond context", lt, action.SequenceIndex)
			continue
		}
		if depth >= MaxNestingDepth {
			tracer().Infof("%s: nesting of contextual lookups too deep, skipping action", lt)
			continue
		}
		var nested *LookupTable
		if nested, err = lt.reader.ResolveLookup(int(action.LookupListIndex)); err != nil {
			break
		}
		line.Idx = gidx.Idx
		tracer().Debugf("%s: apply nested %s at %d", lt, nested, line.Idx)
		var ch bool
		ch, err = nested.transformOne(line, depth+1)
		changed = changed || ch
		if err != nil {
			break
		}
	}
	line.Idx = line.End
	line.Start = oldStart
	line.End = oldEnd - (endBefore - line.End)
	return changed, err
}
