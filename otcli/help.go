package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "script", "scripts", "lang", "langsys", "language":
		pterm.Info.Println("ScriptList / LangSys")
		pterm.Println(`
	ScriptList is a property of GSUB and GPOS. It maps script tags to Scripts.
	A Script has a default LangSys and maps language tags to LangSys entries.
	Scripts missing from the font fall back to 'DFLT', languages to the
	default LangSys of the script.

	A LangSys links a language with features to activate, as indices into
	the feature list:
	+-----------------------------------+
	| Index of required feature or null |
	+-----------------------------------+
	| Index of feature 1                |
	+-----------------------------------+
	| ...                               |
	+-----------------------------------+

	Set the language with lang:<BCP 47 tag>, e.g. lang:de or lang:sr-Latn.
	`)
	case "feature", "features":
		pterm.Info.Println("Features")
		pterm.Println(`
	A feature is a tag and a list of lookups, e.g. 'liga' for standard
	ligatures or 'mark' for mark positioning.

	feature:liga office      applies the lookups of 'liga' to "office"
	feature:liga:mark fi     applies 'liga', then 'mark'

	GSUB features are applied before GPOS features.
	`)
	case "lookup", "lookups", "apply":
		pterm.Info.Println("Lookups")
		pterm.Println(`
	A lookup is a typed list of subtables plus a lookup flag. The flag tells
	which glyph classes to skip.

	lookups                  lists the lookups of the current table
	lookups:7                shows lookup #7
	apply:7 affine           applies lookup #7 to "affine"

	Lookups of unsupported types are listed, but have no effect.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info                     show names and metrics of the font
	table:GSUB|GPOS          select the layout table
	lang[:<tag>]             show or set the language of the text
	scripts                  list the scripts of the table
	features                 list the features of the table
	lookups[:<n>]            list the lookups, or show lookup n
	apply:<n> <text>         apply lookup n to text
	feature:<tag> <text>     apply a feature to text
	help[:<topic>]           help on scripts, features or lookups
	quit                     leave, as does <ctrl>D
	`)
	}
}
