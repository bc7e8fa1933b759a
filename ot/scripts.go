package ot

import "fmt"

// Script lists the language systems of a script. DefaultLangSys is used for
// languages without an entry of their own.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
type Script struct {
	DefaultLangSys Option[LangSys]
	LangSys        map[Tag]LangSys
}

// LangSys links a language system with the features to activate, as indices
// into the feature list. RequiredFeature is -1 if the language system does
// not require a feature.
type LangSys struct {
	RequiredFeature int
	Features        []int
}

// Feature is an entry of a feature list: a feature tag and the indices of the
// lookups implementing the feature, in lookup list order as stored in the font.
type Feature struct {
	Tag     Tag
	Lookups []int
}

// ParseScriptList decodes the script list at location at into a map from
// script tag to script.
func ParseScriptList(src Source, at int) (map[Tag]Script, error) {
	scripts := make(map[Tag]Script)
	if at == 0 {
		return scripts, nil
	}
	r := src.Reader("ScriptList")
	n := int(r.U16(at))
	if n > MaxScriptCount {
		r.Fail(at, fmt.Sprintf("too many scripts: %d", n))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		rec := at + 2 + 6*i
		tag := Tag(r.U32(rec))
		loc := r.Link16(at, rec+4)
		if err := r.Err(); err != nil {
			return nil, err
		}
		if loc == 0 {
			continue
		}
		script, err := parseScript(src, loc)
		if err != nil {
			return nil, err
		}
		scripts[tag] = script
	}
	return scripts, nil
}

func parseScript(src Source, at int) (Script, error) {
	r := src.Reader("Script")
	script := Script{LangSys: make(map[Tag]LangSys)}
	defaultLoc := r.Link16(at, at)
	n := int(r.U16(at + 2))
	if err := r.Err(); err != nil {
		return Script{}, err
	}
	if defaultLoc != 0 {
		lsys, err := parseLangSys(src, defaultLoc)
		if err != nil {
			return Script{}, err
		}
		script.DefaultLangSys = Some(lsys)
	}
	for i := 0; i < n; i++ {
		rec := at + 4 + 6*i
		tag := Tag(r.U32(rec))
		loc := r.Link16(at, rec+4)
		if err := r.Err(); err != nil {
			return Script{}, err
		}
		if loc == 0 {
			continue
		}
		lsys, err := parseLangSys(src, loc)
		if err != nil {
			return Script{}, err
		}
		script.LangSys[tag] = lsys
	}
	return script, nil
}

func parseLangSys(src Source, at int) (LangSys, error) {
	r := src.Reader("LangSys")
	// at+0 is lookupOrderOffset, reserved
	req := r.U16(at + 2)
	n := int(r.U16(at + 4))
	indices := r.U16s(at+6, n)
	if err := r.Err(); err != nil {
		return LangSys{}, err
	}
	lsys := LangSys{RequiredFeature: -1, Features: make([]int, len(indices))}
	if req != 0xFFFF {
		lsys.RequiredFeature = int(req)
	}
	for i, f := range indices {
		lsys.Features[i] = int(f)
	}
	return lsys, nil
}

// ParseFeatureList decodes the feature list at location at.
func ParseFeatureList(src Source, at int) ([]Feature, error) {
	if at == 0 {
		return nil, nil
	}
	r := src.Reader("FeatureList")
	n := int(r.U16(at))
	if n > MaxFeatureCount {
		r.Fail(at, fmt.Sprintf("too many features: %d", n))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	features := make([]Feature, n)
	for i := range features {
		rec := at + 2 + 6*i
		features[i].Tag = Tag(r.U32(rec))
		loc := r.Link16(at, rec+4)
		if loc == 0 {
			continue
		}
		r.Section("Feature")
		// loc+0 is featureParamsOffset
		m := int(r.U16(loc + 2))
		for _, l := range r.U16s(loc+4, m) {
			features[i].Lookups = append(features[i].Lookups, int(l))
		}
		r.Section("FeatureList")
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return features, nil
}
