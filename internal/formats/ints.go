package formats

import (
	"github.com/PolarWolf314/seedtool/internal/entropy"
	"github.com/PolarWolf314/seedtool/internal/radix"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

func decodeInts(in Input, opts Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	values, err := radix.ParseInts(text)
	if err != nil {
		return nil, err
	}
	data, err := entropy.Expand(values, opts.Count)
	if err != nil {
		return nil, err
	}
	return seed.New(data)
}

func encodeInts(s *seed.Seed, opts Options) (string, error) {
	return radix.RenderInts(s.Data, opts.Low, opts.High, " ")
}
