package logging

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v is a terminal. It accepts readers as well as
// writers so stdin and stdout can be checked alike; anything without an
// Fd method is not a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
//
// NO_COLOR (https://no-color.org) and TERM=dumb switch color off.
// CLICOLOR_FORCE=1 switches it on even when w is not a terminal, which
// keeps colored log lines when savekeep watch is piped through a pager.
func SupportsColor(w any) bool {
	return colorAllowed(IsTerminal(w))
}

func colorAllowed(isTerminal bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	return isTerminal
}
