package formats

import (
	"encoding/hex"
	"fmt"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

func decodeHex(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %v", serrors.ErrInvalidAlphabet, err)
	}
	return seed.New(data)
}

func encodeHex(s *seed.Seed, _ Options) (string, error) {
	return hex.EncodeToString(s.Data), nil
}
