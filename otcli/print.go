package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/pterm/pterm"
)

func printLookupList(tr *otlayout.TableReader) {
	lookups := tr.Lookups()
	pterm.Printf("%s LookupList has %d entries\n", tr.Tag(), len(lookups))
	if len(lookups) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Subtables", "Flags", "Supported"},
	}
	for _, lookup := range lookups {
		data = append(data, []string{
			fmt.Sprintf("%d", lookup.Index),
			lookup.TypeName(),
			fmt.Sprintf("%d", lookup.SubtableCount()),
			formatLookupFlags(lookup.Flag),
			formatSupported(lookup.Supported()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(lookup *otlayout.LookupTable) {
	pterm.Printf("Lookup %d: type=%s flags=%s subtables=%d supported=%s\n",
		lookup.Index,
		lookup.TypeName(),
		formatLookupFlags(lookup.Flag),
		lookup.SubtableCount(),
		formatSupported(lookup.Supported()),
	)
}

func printScripts(tr *otlayout.TableReader, script, lang ot.Tag) {
	tags := tr.ScriptTags()
	pterm.Printf("%s ScriptList has %d entries\n", tr.Tag(), len(tags))
	lsys, ok := tr.LangSys(script, lang)
	if !ok {
		pterm.Printf("no language system for script=%s lang=%s\n", script, lang)
		return
	}
	pterm.Printf("%v\nscript=%s lang=%s: required feature=%d, features=%v\n",
		tags, script, lang, lsys.RequiredFeature, lsys.Features)
}

func printFeatures(tr *otlayout.TableReader, script, lang ot.Tag) {
	features := tr.Features()
	pterm.Printf("%s FeatureList has %d entries\n", tr.Tag(), len(features))
	if len(features) == 0 {
		return
	}
	active := map[int]bool{}
	if lsys, ok := tr.LangSys(script, lang); ok {
		for _, inx := range lsys.Features {
			active[inx] = true
		}
		if lsys.RequiredFeature >= 0 {
			active[lsys.RequiredFeature] = true
		}
	}
	data := [][]string{
		{"Index", "Feature", "Lookups", fmt.Sprintf("%s/%s", script, lang)},
	}
	for i, f := range features {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			f.Tag.String(),
			fmt.Sprintf("%v", f.Lookups),
			formatSupported(active[i]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLine(line *otlayout.GlyphLine) {
	data := [][]string{
		{"Pos", "Glyph", "Text", "Width", "Placement", "Advance", "Anchor"},
	}
	for i, g := range line.Glyphs() {
		x, y := g.Placement()
		ax, ay := g.Advance()
		text := g.Text()
		if g.IsMark() {
			text = fmt.Sprintf("%+q", text)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", g.Index()),
			text,
			fmt.Sprintf("%d", g.Width()),
			fmt.Sprintf("(%d,%d)", x, y),
			fmt.Sprintf("(%d,%d)", ax, ay),
			formatAnchorDelta(g.AnchorDelta()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("text: %q\n", line.ToUnicodeText(0, line.Size()))
}

func formatLookupFlags(flag ot.LayoutTableLookupFlag) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LOOKUP_FLAG_RIGHT_TO_LEFT != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if t := flag.MarkAttachmentType(); t != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", t))
	}
	return strings.Join(parts, "|")
}

func formatAnchorDelta(delta int) string {
	if delta == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", delta)
}

func formatSupported(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
