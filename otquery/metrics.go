package otquery

import (
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
	LineGap         sfnt.Units // typographic line gap
}

// FontMetrics retrieves selected metrics of a font from tables 'hhea' and
// 'head'. If 'hhea' has neither ascender nor descender, the typographic
// values of table 'OS/2' are used.
func FontMetrics(font Tables) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if r, ok := reader(font, ot.T("hhea")); ok {
		a, d, gap := r.S16(4), r.S16(6), r.S16(8)
		maxAdv := r.U16(10)
		if r.Err() == nil {
			metrics.Ascent, metrics.Descent = sfnt.Units(a), sfnt.Units(d)
			metrics.LineGap, metrics.MaxAdvance = sfnt.Units(gap), sfnt.Units(maxAdv)
		}
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if r, ok := reader(font, ot.T("OS/2")); ok {
			a, d := sfnt.Units(r.S16(68)), sfnt.Units(r.S16(70))
			if r.Err() == nil {
				tracer().Debugf("OS/2 typo ascent=%d descent=%d", a, d)
				metrics.Ascent, metrics.Descent = a, d
			}
		}
	}
	if head, ok := HeadInfo(font); ok {
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	}
	return metrics
}

// LayoutTables returns the tags of the layout tables present in a font,
// out of GDEF, GSUB and GPOS.
func LayoutTables(font Tables) []string {
	var tables []string
	for _, t := range []string{"GDEF", "GSUB", "GPOS"} {
		if _, ok := font.Table(ot.T(t)); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// FontSupportsScript returns a tuple (script-tag, language-tag) for a given
// input of a script tag and a language tag. If the language has no special
// support in the table, 'dflt' will be returned for the language. If the
// script has no support in the table, DFLT will be returned for the script.
func FontSupportsScript(tr *otlayout.TableReader, scr ot.Tag, lang ot.Tag) (ot.Tag, ot.Tag) {
	dflt := ot.T("dflt")
	if tr == nil {
		return otlayout.DFLT, dflt
	}
	script, ok := tr.Script(scr)
	if !ok {
		tracer().Infof("cannot find script %s in font", scr)
		return otlayout.DFLT, dflt
	}
	tracer().Debugf("script %s is contained in %s", scr, tr.Tag())
	if _, ok := script.LangSys[lang]; ok {
		return scr, lang
	}
	return scr, dflt
}
