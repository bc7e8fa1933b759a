package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/internal/fontload"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for testing OpenType glyph transformations and font diagnostics.")

	commando.
		Register("apply").
		SetDescription("Apply OpenType features to a text and print the resulting glyph line.").
		SetShortDescription("apply features").
		AddArgument("font", "OpenType font file path, or 'go' for the built-in font", "").
		AddArgument("text...", "text to transform (variadic argument parts joined by comma by commando)", "").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Grek); derived from --lang if '-'", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, de, tr)", commando.String, "en").
		AddFlag("features,f", "feature list (e.g. liga,mark or +liga,-kern)", commando.String, "ccmp,liga,clig,mark,mkmk").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0066,U+0069)", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runApplyCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path, or 'go' for the built-in font", "").
		AddArgument("tables...", "optional list of table tags (e.g. GSUB,GPOS,head)", "").
		AddFlag("lookups,k", "list the lookups of GSUB and GPOS", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// --- Font loading ----------------------------------------------------------

// loadedFont bundles the prepared font with the scalable font it has been
// loaded from.
type loadedFont struct {
	*otglyph.Font
	sf *fontload.ScalableFont
}

func mustLoadFont(path string) loadedFont {
	if path == "go" {
		return loadedFont{Font: otglyph.FallbackFont(), sf: fontload.FallbackFont()}
	}
	sf, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	f, err := otglyph.ParseFont(sf.Binary)
	if err != nil {
		fatalf("cannot prepare font %s: %v", path, err)
	}
	return loadedFont{Font: f, sf: sf}
}

// --- Transformation input -------------------------------------------------

// transformRequest collects what is needed to transform a text.
type transformRequest struct {
	script, lang ot.Tag
	features     []ot.Tag
	text         string
}

func parseTransformRequest(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) transformRequest {
	lang, err := parseLanguage(mustFlagString(flags["lang"], "lang"))
	if err != nil {
		fatalf("%v", err)
	}
	script, err := parseScript(mustFlagString(flags["script"], "script"), lang)
	if err != nil {
		fatalf("%v", err)
	}
	features, err := parseFeatureList(mustFlagString(flags["features"], "features"))
	if err != nil {
		fatalf("%v", err)
	}
	text, err := parseInput(args["text"].Value, mustFlagString(flags["codepoints"], "codepoints"))
	if err != nil {
		fatalf("%v", err)
	}
	return transformRequest{
		script:   script,
		lang:     otglyph.LangTag(lang),
		features: features,
		text:     text,
	}
}

func (req transformRequest) apply(f *otglyph.Font) *otlayout.GlyphLine {
	line := f.LineForText(req.text)
	if err := f.ApplyFeatures(line, req.script, req.lang, req.features...); err != nil {
		fatalf("transformation failed: %v", err)
	}
	return line
}

func parseInput(text string, cp string) (string, error) {
	cp = strings.TrimSpace(cp)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return text, nil
}

// parseScript returns the OpenType script tag for an ISO 15924 script name.
// For "-" the script is derived from the language.
func parseScript(s string, lang language.Tag) (ot.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return otglyph.ScriptTag(lang), nil
	}
	scr, err := language.ParseScript(s)
	if err != nil {
		return 0, fmt.Errorf("invalid script %q: %w", s, err)
	}
	return otglyph.ScriptTagFor(scr), nil
}

func parseLanguage(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

// parseFeatureList parses a list of features to switch on. Entries may be
// prefixed with '+' or '-', or suffixed with '=0' or '=1'; features switched
// off are dropped from the list.
func parseFeatureList(spec string) ([]ot.Tag, error) {
	spec = strings.TrimSpace(spec)
	if spec == "-" || spec == "" {
		return nil, nil
	}
	parts := splitCSVSpace(spec)
	out := make([]ot.Tag, 0, len(parts))
	for _, p := range parts {
		tag, on, err := parseFeatureItem(p)
		if err != nil {
			return nil, err
		}
		if on {
			out = append(out, tag)
		}
	}
	return out, nil
}

func parseFeatureItem(item string) (ot.Tag, bool, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return 0, false, errors.New("empty feature entry in --features")
	}
	on := true
	if strings.HasPrefix(item, "+") {
		item = strings.TrimPrefix(item, "+")
	} else if strings.HasPrefix(item, "-") {
		item = strings.TrimPrefix(item, "-")
		on = false
	}
	tagPart := item
	if eq := strings.IndexByte(item, '='); eq >= 0 {
		tagPart = item[:eq]
		v := strings.TrimSpace(item[eq+1:])
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, fmt.Errorf("invalid feature value in %q: %w", item, err)
		}
		on = n != 0
	}
	tagPart = strings.TrimSpace(tagPart)
	if len(tagPart) != 4 {
		return 0, false, fmt.Errorf("feature tag %q is not 4 characters", tagPart)
	}
	return ot.T(tagPart), on, nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF {
		return 0, fmt.Errorf("codepoint %q out of range", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// --- Flags and errors -----------------------------------------------------

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
