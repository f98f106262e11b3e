package cmd

import (
	"errors"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/ui"
)

// hintFor returns a follow-up suggestion for well-known errors.
func hintFor(err error) string {
	switch {
	case errors.Is(err, serrors.ErrNonReversibleChain):
		return "Lossy outputs can only be generated, use " + ui.Flag.Sprint("--in random")
	case errors.Is(err, serrors.ErrNoInput):
		return "Pass INPUT as an argument or pipe it on stdin"
	case errors.Is(err, serrors.ErrInsufficientOrInvalidShares):
		return "Supply enough shares to meet the threshold of enough groups"
	case errors.Is(err, serrors.ErrInvalidGroupSpec):
		return "Groups are written M-of-N, for example " + ui.Flag.Sprint("--groups 2-of-3")
	case errors.Is(err, serrors.ErrNotReproducible):
		return "Generate the seed with " + ui.Flag.Sprint("--deterministic") + ", then pipe it into " + ui.Code.Sprint("seedtool --in hex --out slip39")
	case errors.Is(err, serrors.ErrUnknownFormat):
		return "Run " + ui.Code.Sprint("seedtool --help") + " to see the supported formats"
	default:
		return ""
	}
}
