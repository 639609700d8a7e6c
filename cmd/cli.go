package cmd

import (
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"tigerc/report"
)

// cliFlags carries flag values so that only explicitly set flags override
// the project file.
type cliFlags struct {
	target     string
	logLevel   string
	dumpIR     bool
	dumpAST    bool
	configPath string
}

// Run is the main entry point for the Tiger compiler.  It should be called
// directly from main and returns the process exit code.
func Run() int {
	exitCode := 0
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:          "tigerc <input.tig>",
		Short:        "tigerc compiles Tiger source to intermediate representation",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(args[0], flags, cmd.Flags())
			exitCode = NewCompiler(args[0], cfg).Compile()
			return nil
		},
	}

	addFlags(rootCmd.Flags(), flags)

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Tiger type-checking session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runRepl(flags)
			return nil
		},
	}
	addFlags(replCmd.Flags(), flags)

	highlightCmd := &cobra.Command{
		Use:   "highlight <input.tig>",
		Short: "Display syntax-highlighted Tiger source in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runHighlight(args[0])
			return nil
		},
	}

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(highlightCmd)

	if err := rootCmd.Execute(); err != nil {
		report.DisplayFatal("%s", err)
		return 1
	}

	return exitCode
}

// addFlags registers the shared driver flags on a flag set.
func addFlags(fs *flag.FlagSet, flags *cliFlags) {
	fs.StringVar(&flags.target, "target", "amd64", "target ABI: amd64 or mips")
	fs.StringVar(&flags.logLevel, "loglevel", "verbose", "log level: verbose, warn, error, or silent")
	fs.BoolVar(&flags.dumpIR, "dump-ir", false, "print the generated IR to standard output")
	fs.BoolVar(&flags.dumpAST, "dump-ast", false, "print the parsed AST to standard output")
	fs.StringVar(&flags.configPath, "config", "", "path to the project configuration file (default: tiger.toml beside the input)")
}

// resolveConfig merges defaults, the project file (the --config path when
// given, else the tiger.toml beside the input), and the command-line flags,
// in increasing priority.
func resolveConfig(inputPath string, flags *cliFlags, fs *flag.FlagSet) Config {
	cfg := defaultConfig()

	if err := loadProjectConfig(inputPath, flags.configPath, &cfg); err != nil {
		report.DisplayFatal("invalid project configuration: %s", err)
		os.Exit(1)
	}

	if fs.Changed("target") {
		cfg.Target = flags.target
	}
	if fs.Changed("loglevel") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("dump-ir") {
		cfg.DumpIR = flags.dumpIR
	}
	if fs.Changed("dump-ast") {
		cfg.DumpAST = flags.dumpAST
	}

	return cfg
}
