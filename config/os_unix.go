//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const reservedChars = string(os.PathSeparator) + string(os.PathListSeparator)

// EnableColorOutput reports whether stream is a terminal and NO_COLOR is not set.
func EnableColorOutput(stream *os.File) bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(stream.Fd()))
}
