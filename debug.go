package rowan

import (
	"fmt"
	"os"
)

// globalDebug gates diagnostic logging. A package-level flag rather than a
// Stage field so helpers without a Stage pointer can check it cheaply;
// rowan is single-threaded, so no synchronization is needed.
var globalDebug bool

// SetDebugMode enables or disables diagnostic logging to stderr: missing
// sprite images, unresolvable mask references, selectors matching nothing,
// unknown transition properties.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf prints to stderr under debug mode only.
func debugf(format string, args ...any) {
	if globalDebug {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] "+format+"\n", args...)
	}
}
