package formats

import (
	"strings"

	"github.com/PolarWolf314/seedtool/internal/envelope"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

func decodeEnvelope(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	e, err := envelope.ParseURString(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return seed.FromEnvelope(e)
}

func encodeEnvelope(s *seed.Seed, _ Options) (string, error) {
	e, err := s.ToEnvelope()
	if err != nil {
		return "", err
	}
	return e.URString()
}
