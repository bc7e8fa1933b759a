package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/otglyph/otquery"
	"github.com/pterm/pterm"
)

func tableOp(intp *Intp, op *Op) (error, bool) {
	var tr *otlayout.TableReader
	switch strings.ToUpper(op.arg) {
	case "GSUB":
		tr = intp.font.GSub()
	case "GPOS":
		tr = intp.font.GPos()
	default:
		return fmt.Errorf("table must be GSUB or GPOS, is %q", op.arg), false
	}
	if tr == nil {
		return fmt.Errorf("table %s not found in font", strings.ToUpper(op.arg)), false
	}
	intp.table = tr
	tracer().Infof("setting table: %v", tr.Tag())
	return nil, false
}

func langOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		pterm.Printf("script=%s lang=%s\n", intp.script, intp.lang)
		return nil, false
	}
	return intp.setLanguage(op.arg), false
}

func scriptsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	printScripts(intp.table, intp.script, intp.lang)
	return nil, false
}

func featuresOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	printFeatures(intp.table, intp.script, intp.lang)
	return nil, false
}

func lookupsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	if arg, ok := op.hasArg(); ok {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("lookup index not numeric: %v", arg), false
		}
		lookup, err := intp.table.ResolveLookup(i)
		if err != nil {
			return err, false
		}
		printLookup(lookup)
		return nil, false
	}
	printLookupList(intp.table)
	return nil, false
}

// applyOp applies a single lookup to a text: "apply:<index> <text>".
func applyOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	i, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("lookup index not numeric: %v", op.arg), false
	}
	line := intp.font.LineForText(op.text)
	changed, err := intp.table.ApplyLookups(line, i)
	if err != nil {
		return err, false
	}
	pterm.Printf("lookup %d changed line: %v\n", i, changed)
	printLine(line)
	return nil, false
}

// featureOp applies features to a text, GSUB before GPOS:
// "feature:<tag>[:<tag>…] <text>".
func featureOp(intp *Intp, op *Op) (error, bool) {
	tags := []ot.Tag{ot.T(op.arg)}
	if op.format != "" {
		tags = append(tags, ot.T(op.format))
	}
	line := intp.font.LineForText(op.text)
	if err := intp.font.ApplyFeatures(line, intp.script, intp.lang, tags...); err != nil {
		return err, false
	}
	printLine(line)
	return nil, false
}

// infoOp prints general information about the font and checks the current
// script and language against the selected table.
func infoOp(intp *Intp, op *Op) (error, bool) {
	names := otquery.NameInfo(intp.font)
	m := otquery.FontMetrics(intp.font)
	data := [][]string{
		{"Property", "Value"},
		{"family", names["family"]},
		{"subfamily", names["subfamily"]},
		{"version", names["version"]},
		{"units per em", fmt.Sprintf("%d", m.UnitsPerEm)},
		{"ascent/descent", fmt.Sprintf("%d/%d", m.Ascent, m.Descent)},
		{"layout tables", strings.Join(otquery.LayoutTables(intp.font), " ")},
	}
	if maxp, ok := otquery.MaxPInfo(intp.font); ok {
		data = append(data, []string{"glyphs", fmt.Sprintf("%d", maxp.NumGlyphs)})
	}
	if intp.table != nil {
		s, l := otquery.FontSupportsScript(intp.table, intp.script, intp.lang)
		data = append(data, []string{"script/lang", fmt.Sprintf("%s/%s", s, l)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}
