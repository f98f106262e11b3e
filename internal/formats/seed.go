package formats

import (
	"strings"

	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

func decodeSeedUR(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	u, err := ur.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return seed.FromUR(u)
}

func encodeSeedUR(s *seed.Seed, _ Options) (string, error) {
	u, err := s.UR()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
