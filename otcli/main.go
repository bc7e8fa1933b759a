package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otlayout"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (default: Go Sans)")
	lang := flag.String("lang", "en", "BCP 47 language of input text")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to OpenType glyph CLI")
	//
	// set up REPL
	repl, err := readline.New("otg > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	if err := intp.setLanguage(*lang); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   *otglyph.Font
	repl   *readline.Instance
	table  *otlayout.TableReader // GSUB or GPOS
	script ot.Tag
	lang   ot.Tag
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	table := "none"
	if intp.table != nil {
		table = intp.table.Tag().String()
	}
	return fmt.Sprintf("( font=%q table=%s script=%s lang=%s )", intp.font.Name, table, intp.script, intp.lang)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		op, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command: "code:arg:format text".
type Op struct {
	code   int
	arg    string
	format string
	text   string
}

const NOOP = -1
const (
	QUIT int = iota
	HELP
	TABLE
	LANG
	SCRIPTS
	FEATURES
	LOOKUPS
	APPLY
	FEATURE
	INFO
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"table":    TABLE,
	"lang":     LANG,
	"scripts":  SCRIPTS,
	"features": FEATURES,
	"lookups":  LOOKUPS,
	"apply":    APPLY,
	"feature":  FEATURE,
	"info":     INFO,
}

var opNames = []string{
	"quit",
	"help",
	"table",
	"lang",
	"scripts",
	"features",
	"lookups",
	"apply",
	"feature",
	"info",
}

// parseCommand splits a command line into the command word with its
// colon-separated arguments and the remaining text, e.g.
//
//	apply:3 affine
//	feature:liga office
//	lookups:12
//
// Unknown commands are interpreted as a request for help.
func parseCommand(line string) (*Op, error) {
	word, text, _ := strings.Cut(strings.TrimSpace(line), " ")
	c := strings.Split(word, ":")
	code, ok := opMap[strings.ToLower(c[0])]
	if !ok {
		tracer().Infof("unknown command %q", c[0])
		code = HELP
	}
	op := &Op{
		code:   code,
		arg:    getOptArg(c, 1),
		format: getOptArg(c, 2),
		text:   strings.TrimSpace(text),
	}
	if (code == APPLY || code == FEATURE) && op.noArg() {
		return nil, fmt.Errorf("%s needs an argument, e.g. %s:1 text", opNames[code], opNames[code])
	}
	tracer().Debugf("parsed command: %s %v", opNames[code], c[1:])
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	TABLE:    tableOp,
	LANG:     langOp,
	SCRIPTS:  scriptsOp,
	FEATURES: featuresOp,
	LOOKUPS:  lookupsOp,
	APPLY:    applyOp,
	FEATURE:  featureOp,
	INFO:     infoOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", op.code), false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontfile string) (err error) {
	if fontfile == "" {
		intp.font = otglyph.FallbackFont()
	} else if intp.font, err = otglyph.LoadFont(fontfile); err != nil {
		return fmt.Errorf("cannot load font %s: %w", fontfile, err)
	}
	tracer().Infof("loaded font = %s", intp.font.Name)
	if intp.table = intp.font.GSub(); intp.table == nil {
		intp.table = intp.font.GPos()
	}
	return nil
}

func (intp *Intp) setLanguage(bcp47 string) error {
	l, err := language.Parse(bcp47)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", bcp47, err)
	}
	intp.script, intp.lang = otglyph.ScriptTag(l), otglyph.LangTag(l)
	return nil
}

// ----------------------------------------------------------------------

var ERR_NO_TABLE = errors.New("font has no layout table selected")

func (intp *Intp) checkTable() error {
	if intp.table == nil {
		return ERR_NO_TABLE
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
