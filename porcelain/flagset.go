// Package porcelain implements the vcs command-line verbs: each
// function parses its own flags, loads (or creates) a Repository, and
// prints exactly what a successful or failed command should print.
package porcelain

import (
	"flag"
	"fmt"
	"os"
)

// newFlagSet mirrors the teacher's CreateCommandFlagSet: one flag.FlagSet
// per command, with a description and usage string printed on misuse.
func newFlagSet(name, desc, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "\nDescription:\n\n\t%s\n\n", desc)
		fmt.Fprintf(os.Stderr, "Usage: %s\n\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// fail prints msg to stderr and exits non-zero.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vcs: "+format+"\n", args...)
	os.Exit(1)
}

// shortHash returns a commit hash abbreviated for display.
func shortHash(hash string) string {
	if len(hash) > 10 {
		return hash[:10]
	}
	return hash
}
