package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"tigerc/escape"
	"tigerc/frame"
	"tigerc/syntax"
	"tigerc/temp"
	"tigerc/translate"
	"tigerc/tree"
	"tigerc/types"
	"tigerc/walk"
)

const replPrompt = "tiger> "

const replBanner = `tigerc REPL -- type a Tiger expression to see its type.
Commands: :ir toggles IR dumping, :quit exits.`

// runRepl starts the interactive session: each line is parsed, escape
// analyzed, and type checked as a complete program, and optionally lowered
// to IR.
func runRepl(flags *cliFlags) int {
	fmt.Println(replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	dumpIR := flags.dumpIR

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			switch input {
			case ":quit":
				return 0
			case ":ir":
				dumpIR = !dumpIR
				fmt.Printf("IR dumping %s\n", map[bool]string{true: "on", false: "off"}[dumpIR])
			default:
				fmt.Println("unknown command; :ir toggles IR dumping, :quit exits")
			}
			continue
		}

		evalLine(input, flags.target, dumpIR)
		ln.AppendHistory(input)
	}
}

// evalLine runs the pipeline over one REPL line and prints the result type
// or the error.
func evalLine(source, target string, dumpIR bool) {
	program, err := syntax.NewParser(source).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	escape.Analyze(program)

	ctx := types.NewContext()
	typ, err := walk.NewWalker(ctx).Walk(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	fmt.Println(typ.Repr())

	if dumpIR {
		temps := temp.NewFactory()

		var frames frame.Factory
		if target == "mips" {
			frames = &frame.MipsFactory{Temps: temps}
		} else {
			frames = &frame.X64Factory{Temps: temps}
		}

		for _, frag := range translate.NewGenerator(frames, temps, ctx).Generate(program) {
			switch f := frag.(type) {
			case *translate.ProcFragment:
				fmt.Printf("%s:\n", f.Frame.Name().Name())
				tree.NewPrinter(os.Stdout).PrintStm(f.Body)
			case *translate.StringFragment:
				fmt.Printf("%s = %q\n", f.Label.Name(), f.Value)
			}
		}
	}
}
