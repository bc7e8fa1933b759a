package otlayout

import (
	"slices"

	"github.com/npillmayer/otglyph/ot"
)

// DFLT is the tag of the default script, 'dflt' the tag of the default language.
var (
	DFLT = ot.T("DFLT")
	dflt = ot.T("dflt")
)

// ScriptTags returns the tags of all scripts the table has lookups for.
func (tr *TableReader) ScriptTags() []ot.Tag {
	tags := make([]ot.Tag, 0, len(tr.scripts))
	for t := range tr.scripts {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// Script returns the script with the given tag, without falling back to DFLT.
func (tr *TableReader) Script(tag ot.Tag) (ot.Script, bool) {
	s, ok := tr.scripts[tag]
	return s, ok
}

// Features returns the feature list of the table.
func (tr *TableReader) Features() []ot.Feature {
	f := make([]ot.Feature, len(tr.features))
	copy(f, tr.features)
	return f
}

// LangSys returns the language system for a script and language. If the script
// is not present, script DFLT is used. If the language is not present or is
// 'dflt', the script's default language system is used.
func (tr *TableReader) LangSys(script, lang ot.Tag) (ot.LangSys, bool) {
	s, ok := tr.scripts[script]
	if !ok {
		if s, ok = tr.scripts[DFLT]; !ok {
			return ot.LangSys{}, false
		}
	}
	if lang != dflt {
		if lsys, ok := s.LangSys[lang]; ok {
			return lsys, true
		}
	}
	return s.DefaultLangSys.Unwrap()
}

// FeatureLookups returns the indices of the lookups implementing a feature for
// a script and language, sorted in lookup list order. This is the order in which
// the lookups are to be applied. The required feature of the language system is
// included if its tag equals feature.
func (tr *TableReader) FeatureLookups(script, lang, feature ot.Tag) []int {
	lsys, ok := tr.LangSys(script, lang)
	if !ok {
		return nil
	}
	var lookups []int
	collect := func(inx int) {
		if inx >= 0 && inx < len(tr.features) && tr.features[inx].Tag == feature {
			lookups = append(lookups, tr.features[inx].Lookups...)
		}
	}
	collect(lsys.RequiredFeature)
	for _, inx := range lsys.Features {
		collect(inx)
	}
	slices.Sort(lookups)
	return slices.Compact(lookups)
}

// ApplyLookups applies lookups, given by index, one after the other to the
// window of line. It returns true if any lookup changed the line.
func (tr *TableReader) ApplyLookups(line *GlyphLine, indices ...int) (bool, error) {
	changed := false
	for _, inx := range indices {
		lookup, err := tr.ResolveLookup(inx)
		if err != nil {
			return changed, err
		}
		ch, err := lookup.TransformLine(line)
		changed = changed || ch
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}
