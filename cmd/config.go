package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"tigerc/report"
)

// projectFileName is the optional per-project configuration file looked up
// next to the input file.
const projectFileName = "tiger.toml"

// Config is the effective driver configuration: the project file merged
// with the command-line flags, flags winning.
type Config struct {
	Target   string `toml:"target"`
	LogLevel string `toml:"loglevel"`
	DumpIR   bool   `toml:"dump_ir"`
	DumpAST  bool   `toml:"dump_ast"`
}

// defaultConfig returns the configuration used when neither a project file
// nor a flag says otherwise.
func defaultConfig() Config {
	return Config{Target: "amd64", LogLevel: "verbose"}
}

// loadProjectConfig reads the project configuration file: the one named by
// configPath when given (--config), otherwise the tiger.toml beside the
// input file.  A missing default file is not an error; a missing explicitly
// named file, or a malformed file, is.
func loadProjectConfig(inputPath, configPath string, cfg *Config) error {
	path := configPath
	if path == "" {
		path = filepath.Join(filepath.Dir(inputPath), projectFileName)
	}

	buff, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && configPath == "" {
			return nil
		}

		return err
	}

	return toml.Unmarshal(buff, cfg)
}

// logLevels maps configuration strings to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}
