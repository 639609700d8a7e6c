package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
)

// displayError writes a compile error to standard error.  The line itself is
// uncolored so that its format stays stable for scripted consumers.
func displayError(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
}

// displayPhase writes a phase progress line to standard output.
func displayPhase(msg string, args ...interface{}) {
	fmt.Printf(msg+"\n", args...)
}

// DisplayCompileHeader displays the compiler banner before compilation
// begins: the input file and the selected target.
func DisplayCompileHeader(input, target string) {
	fmt.Print("tigerc -- compiling ")
	InfoColorFG.Print(input)
	fmt.Print(" for ")
	InfoColorFG.Println(target)
}

// DisplayFatal displays a fatal driver error: bad arguments, unreadable
// input, invalid configuration.
func DisplayFatal(msg string, args ...interface{}) {
	fmt.Fprint(os.Stderr, ErrorStyleBG.Sprint("Error"))
	fmt.Fprintln(os.Stderr, " "+fmt.Sprintf(msg, args...))
}
