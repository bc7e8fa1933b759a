package otglyph

import (
	"strings"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// LineForText creates a glyph line for a text. The text is normalized to
// NFC first, as fonts map composed characters. Every code-point yields one
// glyph standing for it; code-points the font has no glyph for are mapped to
// glyph 0 (.notdef).
func (f *Font) LineForText(text string) *otlayout.GlyphLine {
	text = norm.NFC.String(text)
	glyphs := make([]otlayout.Glyph, 0, len(text))
	for _, r := range text {
		gid, ok := f.cmap[r]
		if !ok {
			tracer().Debugf("no glyph for %#U", r)
		}
		glyphs = append(glyphs, f.glyph(gid).WithChars(string(r)))
	}
	return otlayout.NewGlyphLine(glyphs)
}

func (f *Font) glyph(gid ot.GlyphIndex) otlayout.Glyph {
	g, ok := f.glyphs[gid]
	if !ok {
		g = otlayout.NewGlyph(gid, 0, ot.None[rune]())
	}
	return g.WithMark(f.gdef.GlyphClass(gid) == ot.MarkGlyph)
}

// ApplyFeatures applies the lookups of features to the window of line, first
// the GSUB features, then the GPOS features. Features are applied in the
// order given, each with its lookups in lookup list order. Features the font
// does not have for script and lang are ignored.
//
// This is a minimal driver; it knows nothing about script-specific shaping.
func (f *Font) ApplyFeatures(line *otlayout.GlyphLine, script, lang ot.Tag, features ...ot.Tag) error {
	for _, tr := range []*otlayout.TableReader{f.gsub, f.gpos} {
		if tr == nil {
			continue
		}
		for _, feature := range features {
			lookups := tr.FeatureLookups(script, lang, feature)
			if len(lookups) == 0 {
				continue
			}
			tracer().Debugf("%s feature %s: lookups %v", tr.Tag(), feature, lookups)
			if _, err := tr.ApplyLookups(line, lookups...); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Script and language tags ----------------------------------------------

// OpenType script tags differing from the lowercase ISO 15924 code.
var scriptTags = map[string]string{
	"Beng": "bng2", "Deva": "dev2", "Gujr": "gjr2", "Guru": "gur2", "Knda": "knd2",
	"Mlym": "mlm2", "Orya": "ory2", "Taml": "tml2", "Telu": "tel2",
	"Hira": "kana", "Jpan": "kana", "Hans": "hani", "Hant": "hani", "Kore": "hang",
	"Zyyy": "DFLT", "Zinh": "DFLT", "Zzzz": "DFLT",
}

// OpenType language system tags differing from the uppercase ISO 639-3 code.
var langTags = map[string]string{
	"zho": "ZHS", "jpn": "JAN", "spa": "ESP", "tur": "TRK", "swe": "SVE",
	"pol": "PLK", "ces": "CSY", "ron": "ROM", "por": "PTG", "nob": "NOR",
}

// ScriptTag returns the OpenType script tag for the script of a language,
// e.g. 'latn' for English. If the script cannot be determined, 'DFLT' is
// returned.
func ScriptTag(lang language.Tag) ot.Tag {
	script, conf := lang.Script()
	if lang == language.Und || conf == language.No {
		return otlayout.DFLT
	}
	return ScriptTagFor(script)
}

// ScriptTagFor returns the OpenType script tag for an ISO 15924 script.
func ScriptTagFor(script language.Script) ot.Tag {
	code := script.String()
	if t, ok := scriptTags[code]; ok {
		return ot.T(t)
	}
	return ot.T(strings.ToLower(code))
}

// LangTag returns the OpenType language system tag for a language, e.g.
// 'DEU ' for German. If the language cannot be determined, 'dflt' is returned.
func LangTag(lang language.Tag) ot.Tag {
	base, conf := lang.Base()
	if lang == language.Und || conf == language.No {
		return ot.T("dflt")
	}
	code := base.ISO3()
	if t, ok := langTags[code]; ok {
		code = t
	}
	return ot.T(strings.ToUpper(code))
}
