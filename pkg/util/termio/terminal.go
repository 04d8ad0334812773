package termio

import (
	"os"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is assumed for the terminal whenever its true width cannot
// be determined, such as when output is piped into a file.
const DEFAULT_WIDTH uint = 120

// TerminalWidth returns the width (in characters) of the terminal attached
// to standard output, or DEFAULT_WIDTH if there is none.
func TerminalWidth() uint {
	fd := int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return DEFAULT_WIDTH
	}
	//
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return uint(w)
	}
	//
	return DEFAULT_WIDTH
}
