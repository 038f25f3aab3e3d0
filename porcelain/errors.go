package porcelain

import "errors"

// ErrUnsupported marks a command form that is recognized but
// deliberately not implemented, e.g. "rm -f" or "remote" subcommands
// other than "add".
var ErrUnsupported = errors.New("unsupported")
