package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otglyph/otlayout"
	"github.com/thatisuday/commando"
)

func runApplyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path argument is required")
	}
	f := mustLoadFont(fontPath)
	req := parseTransformRequest(args, flags)
	if mustFlagBool(flags["verbose"], "verbose") {
		fmt.Printf("script=%s lang=%s features=%v\n", req.script, req.lang, req.features)
	}
	line := req.apply(f.Font)
	fmt.Println(formatGlyphOutput(line))
}

// formatGlyphOutput prints a glyph line in a compact, diffable notation:
//
//	[gid=text+width@xPlacement,yPlacement^anchorDelta|…]
//
// Placements and anchor deltas are omitted if zero.
func formatGlyphOutput(line *otlayout.GlyphLine) string {
	var b strings.Builder
	for i, g := range line.Glyphs() {
		if i > 0 {
			b.WriteString("|")
		}
		fmt.Fprintf(&b, "%d=%s+%d", g.Index(), g.Text(), g.Width())
		if x, y := g.Placement(); x != 0 || y != 0 {
			fmt.Fprintf(&b, "@%d,%d", x, y)
		}
		if d := g.AnchorDelta(); d != 0 {
			fmt.Fprintf(&b, "^%d", d)
		}
	}
	return "[" + b.String() + "]"
}
