// Package debug provides the indented enter/exit tracing used across this
// module's hot paths, adapted from the call sites in the teacher's
// tree.go/dump.go ("github.com/lestrrat/helium/internal/debug",
// debug.Enabled, debug.Printf, debug.IPrintf/(*Guard).IRelease") — the
// package itself was not part of the retrieved file set, only its call
// sites, so its implementation here is reconstructed from usage.
//
// Enabled is resolved once from the HELIUM_DEBUG environment variable;
// this module has no other configuration surface.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Enabled gates every call in this package to a no-op when false, so
// call sites like `if debug.Enabled { ... }` avoid paying for the
// fmt.Sprintf/string-building work on the hot path in production builds.
var Enabled = os.Getenv("HELIUM_DEBUG") != ""

var logger = log.New(os.Stderr, "", 0)

var depth int64

func indent() string {
	d := atomic.LoadInt64(&depth)
	if d <= 0 {
		return ""
	}
	return strings.Repeat("  ", int(d))
}

// Printf logs a single trace line at the current indentation depth.
func Printf(format string, args ...interface{}) {
	if !Enabled {
		return
	}
	logger.Printf("%s%s", indent(), fmt.Sprintf(format, args...))
}

// Guard is returned by IPrintf; calling IRelease logs the matching exit
// line and restores the indentation depth.
type Guard struct {
	label string
}

// IPrintf logs an entry line and increases indentation for nested Printf
// calls until the returned Guard's IRelease is called.
func IPrintf(format string, args ...interface{}) *Guard {
	label := fmt.Sprintf(format, args...)
	if Enabled {
		logger.Printf("%s%s", indent(), label)
		atomic.AddInt64(&depth, 1)
	}
	return &Guard{label: label}
}

// IRelease logs the exit line passed in format/args and restores the
// indentation depth that IPrintf increased.
func (g *Guard) IRelease(format string, args ...interface{}) {
	if !Enabled {
		return
	}
	atomic.AddInt64(&depth, -1)
	logger.Printf("%s%s", indent(), fmt.Sprintf(format, args...))
}
