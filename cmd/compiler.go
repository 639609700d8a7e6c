// Package cmd is the top-level driver package for the Tiger compiler: it
// parses command-line arguments, loads configuration, and chains the
// compilation phases.
package cmd

import (
	"fmt"
	"os"

	"tigerc/ast"
	"tigerc/escape"
	"tigerc/frame"
	"tigerc/report"
	"tigerc/syntax"
	"tigerc/temp"
	"tigerc/translate"
	"tigerc/tree"
	"tigerc/types"
	"tigerc/walk"
)

// Compiler represents the state of one compilation job.
type Compiler struct {
	// The path to the Tiger source file being compiled.
	inputPath string

	// The effective configuration.
	cfg Config

	// The reporter all phases log through.
	rep *report.Reporter
}

// NewCompiler creates a compiler for the given input with the given
// configuration.
func NewCompiler(inputPath string, cfg Config) *Compiler {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = report.LogLevelVerbose
	}

	return &Compiler{
		inputPath: inputPath,
		cfg:       cfg,
		rep:       report.NewReporter(level),
	}
}

// Compile runs the full pipeline: lex and parse, escape analysis, semantic
// analysis, and IR generation.  It returns the process exit code.
func (c *Compiler) Compile() int {
	source, err := os.ReadFile(c.inputPath)
	if err != nil {
		report.DisplayFatal("cannot open file `%s`: %s", c.inputPath, err)
		return 1
	}

	frags, ok := c.compileSource(string(source))
	if !ok {
		return 1
	}

	if c.cfg.DumpIR {
		dumpFragments(os.Stdout, frags)
	}

	c.rep.ReportPhase("Compilation completed successfully")
	return 0
}

// compileSource runs the phase pipeline over source text, reporting any
// error through the reporter.
func (c *Compiler) compileSource(source string) ([]translate.Fragment, bool) {
	// Lexing and parsing.
	program, err := syntax.NewParser(source).Parse()
	if err != nil {
		c.rep.ReportError(err)
		return nil, false
	}
	c.rep.ReportPhase("Parsing completed successfully")

	// Escape analysis: must precede IR generation, which reads the flags.
	escape.Analyze(program)
	c.rep.ReportPhase("Escape analysis completed")

	if c.cfg.DumpAST {
		fmt.Print(ast.Dump(program))
	}

	// Semantic analysis.
	ctx := types.NewContext()
	if _, err := walk.NewWalker(ctx).Walk(program); err != nil {
		c.rep.ReportError(err)
		return nil, false
	}
	c.rep.ReportPhase("Semantic analysis completed successfully")

	// IR generation.
	temps := temp.NewFactory()
	gen := translate.NewGenerator(c.frameFactory(temps), temps, ctx)
	frags := gen.Generate(program)
	c.rep.ReportPhase("IR generation completed: %d fragments", len(frags))

	return frags, true
}

// frameFactory selects the frame layout for the configured target.
func (c *Compiler) frameFactory(temps *temp.Factory) frame.Factory {
	if c.cfg.Target == "mips" {
		return &frame.MipsFactory{Temps: temps}
	}

	return &frame.X64Factory{Temps: temps}
}

// dumpFragments writes the human-readable IR of all fragments.
func dumpFragments(w *os.File, frags []translate.Fragment) {
	fmt.Fprintln(w, "========== IR Dump ==========")

	for i, frag := range frags {
		switch f := frag.(type) {
		case *translate.ProcFragment:
			fmt.Fprintf(w, "Fragment #%d (Procedure): %s\n", i, f.Frame.Name().Name())
			tree.NewPrinter(w).PrintStm(f.Body)
			fmt.Fprintln(w)
		case *translate.StringFragment:
			fmt.Fprintf(w, "Fragment #%d (String): %s = %q\n\n", i, f.Label.Name(), f.Value)
		}
	}

	fmt.Fprintln(w, "========== End IR Dump ==========")
}
