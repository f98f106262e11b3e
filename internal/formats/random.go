package formats

import (
	"fmt"
	"io"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

// decodeRandom ignores the input and reads Count bytes from the random source.
func decodeRandom(_ Input, opts Options) (*seed.Seed, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", serrors.ErrRange)
	}
	if opts.Random == nil {
		return nil, fmt.Errorf("no random source configured")
	}

	data := make([]byte, opts.Count)
	if _, err := io.ReadFull(opts.Random, data); err != nil {
		return nil, fmt.Errorf("reading random data: %w", err)
	}
	return seed.New(data)
}
