package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/limecc"
	"github.com/dekarrin/limecc/lime"
	"github.com/dekarrin/limecc/regex"
)

// runRepl opens an interactive prompt for trying a regex or a single
// LIME rule against the grammar built so far (last may be nil if no
// input file was given). Grounded on internal/input/input.go's
// InteractiveCommandReader (a *readline.Instance wrapped for
// line-at-a-time reads) and npillmayer-gorgo's terex/terexlang/trepl
// REPL loop shape: read a line, dispatch by a leading command word,
// print a result, repeat until EOF or "quit".
func runRepl(last *limecc.Result) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "limecc> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	fmt.Println(`limecc repl: enter a {regex} to check it parses, or a full LIME
statement (e.g. "foo ~= {[a-z]+}") to add it to a scratch grammar.
Type "grammar" to show the grammar built so far, "quit" or Ctrl-D to exit.`)

	var scratch strings.Builder
	if last != nil {
		scratch.WriteString(last.Source)
		scratch.WriteString("\n")
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" {
			return nil
		}
		if line == "grammar" {
			if last == nil {
				fmt.Println("no grammar built yet")
			} else {
				fmt.Println(last.Spec.Grammar.String())
			}
			continue
		}

		if strings.HasPrefix(line, "{") {
			replRegex(line)
			continue
		}

		scratch.WriteString(line)
		scratch.WriteString("\n")
		if _, err := lime.Parse(scratch.String()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			// drop the line that broke it so the scratch buffer stays usable
			trimmed := strings.TrimSuffix(scratch.String(), line+"\n")
			scratch.Reset()
			scratch.WriteString(trimmed)
			continue
		}
		fmt.Println("ok")
	}
}

// replRegex parses and echoes back the AST of a single {regex} entry,
// for a grammar author checking a pattern in isolation before adding
// it to a LIME source file.
func replRegex(text string) {
	pattern := strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}")
	node, err := regex.Parse(pattern)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	fmt.Printf("%#v\n", node)
}
