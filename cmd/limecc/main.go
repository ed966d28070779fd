/*
Limecc reads one or more LIME grammar specification files and builds
the LR(k) parsing automaton and DFA-based lexer(s) they describe.

Usage:

	limecc [flags] file...

The flags are:

	-v, --version
		Print the current version and exit.

	-o, --output FILE
		Serialize the constructed tables (via tablecache) to FILE.
		Target-language code emission is a separate collaborator and
		out of scope here.

	--print-states
		Print the constructed LR(k) state table.

	--print-dfas
		Print the assembled lexer DFA(s).

	--print-lime-grammar
		Print the grammar the LIME front end parsed out of the input.

	--parse FILE
		After construction succeeds, lex and parse FILE against the
		constructed table and report accept/reject.

	--no-tests
		Skip running the input's %test directives.

	--tests-only
		Run only the %test directives; skip --output entirely.

	--repl
		Open an interactive prompt for trying a regex or a LIME rule
		against the grammar built so far.

Exit code is 0 on success, 1 on any error, per the CLI surface this
generator implements.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/limecc"
	"github.com/dekarrin/limecc/internal/version"
	"github.com/dekarrin/limecc/tablecache"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitError
)

var (
	returnCode = ExitSuccess

	flagOutput      = pflag.StringP("output", "o", "", "Serialize the constructed tables to the given file")
	flagStates      = pflag.Bool("print-states", false, "Print the constructed LR(k) state table")
	flagDFAs        = pflag.Bool("print-dfas", false, "Print the assembled lexer DFA(s)")
	flagLimeGrammar = pflag.Bool("print-lime-grammar", false, "Print the grammar the LIME front end parsed")
	flagParse       = pflag.String("parse", "", "Lex and parse the given file against the constructed table")
	flagNoTests     = pflag.Bool("no-tests", false, "Skip running %test directives")
	flagTestsOnly   = pflag.Bool("tests-only", false, "Run only %test directives; skip --output")
	flagRepl        = pflag.Bool("repl", false, "Open an interactive prompt over the grammar built so far")
	flagConfig      = pflag.String("config", "limecc.toml", "Path to an optional limecc.toml settings file")
	flagVersion     = pflag.BoolP("version", "v", false, "Print the current version and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading %s: %s\n", *flagConfig, err.Error())
		returnCode = ExitError
		return
	}
	if *flagNoTests {
		cfg.NoTests = true
	}

	args := pflag.Args()
	if len(args) == 0 && !*flagRepl {
		fmt.Fprintln(os.Stderr, "ERROR: at least one LIME input file is required")
		returnCode = ExitError
		return
	}

	var lastResult *limecc.Result
	for _, path := range args {
		res, err := runFile(path, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", path, err.Error())
			returnCode = ExitError
			return
		}
		lastResult = res
	}

	if *flagRepl {
		if err := runRepl(lastResult); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: repl: %s\n", err.Error())
			returnCode = ExitError
			return
		}
	}
}

// runFile runs the full pipeline over one input file and honors every
// flag that depends on its Result.
func runFile(path string, cfg config) (*limecc.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := limecc.Generate(string(data), limecc.Options{K: cfg.Lookahead})
	if err != nil {
		return nil, err
	}

	if *flagLimeGrammar {
		printLimeGrammar(res)
	}
	if *flagStates {
		printStates(res)
	}
	if *flagDFAs {
		printDFAs(res)
	}

	if !cfg.NoTests {
		for _, outcome := range res.RunTests() {
			if !outcome.Accepted {
				return nil, fmt.Errorf("%%test %s: %v", outcome.Test.Root, outcome.Err)
			}
		}
	}

	if *flagTestsOnly {
		return res, nil
	}

	if *flagParse != "" {
		f, err := os.Open(*flagParse)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reduced, ok, err := res.ParseInput(f)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: input rejected", *flagParse)
		}
		fmt.Printf("%s: accepted, %d rule(s) reduced\n", *flagParse, len(reduced))
	}

	if *flagOutput != "" {
		if err := tablecache.Store(*flagOutput, res.Cache); err != nil {
			return nil, fmt.Errorf("writing %s: %w", *flagOutput, err)
		}
	}

	return res, nil
}
