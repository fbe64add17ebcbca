package termio

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTerminal reports whether standard output is attached to an actual
// terminal, rather than (say) a pipe or file.  Colouring is only applied when
// it is.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Colour wraps text in the given foreground colour escape, followed by a
// reset.
func Colour(text string, col uint) string {
	escape := NewAnsiEscape().FgColour(col).Build()
	reset := ResetAnsiEscape().Build()
	//
	return escape + text + reset
}
