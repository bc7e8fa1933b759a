package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/otglyph/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", f.sf.Filepath)
	fmt.Printf("Name: %s\n", f.Name)
	names := otquery.NameInfo(f)
	if family := names["family"]; family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub := names["subfamily"]; sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if version := names["version"]; version != "" {
		fmt.Printf("Version: %s\n", version)
	}
	m := otquery.FontMetrics(f)
	fmt.Printf("Metrics: upem=%d ascent=%d descent=%d linegap=%d\n", m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap)
	if maxp, ok := otquery.MaxPInfo(f); ok {
		fmt.Printf("Glyphs: %d\n", maxp.NumGlyphs)
	}
	fmt.Printf("Layout: %s\n", strings.Join(otquery.LayoutTables(f), ","))

	for _, tr := range []*otlayout.TableReader{f.GSub(), f.GPos()} {
		if tr == nil {
			continue
		}
		tags := make([]string, 0, len(tr.Features()))
		for _, feat := range tr.Features() {
			tags = append(tags, feat.Tag.String())
		}
		slices.Sort(tags)
		fmt.Printf("%s: scripts=%v features=%v lookups=%d\n", tr.Tag(), tr.ScriptTags(),
			slices.Compact(tags), tr.LookupCount())
		if mustFlagBool(flags["lookups"], "lookups") {
			for _, lookup := range tr.Lookups() {
				fmt.Printf("  %s, %d subtables, supported=%v\n", lookup, lookup.SubtableCount(), lookup.Supported())
			}
		}
	}

	if len(args["tables"].Value) > 0 {
		printSelectedTables(f, args["tables"].Value)
	}
}

func printSelectedTables(f loadedFont, raw string) {
	for _, t := range splitCSVSpace(raw) {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		b, ok := f.Table(ot.T(tagName))
		if !ok {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		fmt.Printf("table %s: size=%d\n", tagName, len(b))
	}
}
