package formats

import (
	"fmt"
	"strings"

	"github.com/gavincarr/go-slip39"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

// SLIP-39 draws its own randomness, so these shares are not reproducible
// with a deterministic source.

func decodeSLIP39(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}

	var mnemonics []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(strings.ToLower(line)), " "); line != "" {
			mnemonics = append(mnemonics, line)
		}
	}
	if len(mnemonics) == 0 {
		return nil, serrors.ErrNoInput
	}

	secret, err := slip39.CombineMnemonicsWithPassphrase(mnemonics, []byte{})
	if err != nil {
		return nil, fmt.Errorf("%w: slip39: %v", serrors.ErrInsufficientOrInvalidShares, err)
	}
	return seed.New(secret)
}

func encodeSLIP39(s *seed.Seed, opts Options) (string, error) {
	groups := make([]slip39.MemberGroupParameters, len(opts.SSKRSpec.Groups))
	for i, g := range opts.SSKRSpec.Groups {
		groups[i] = slip39.MemberGroupParameters{MemberThreshold: g.Threshold, MemberCount: g.Count}
	}

	shares, err := slip39.GenerateMnemonicsWithPassphrase(opts.SSKRSpec.GroupThreshold, groups, s.Data, []byte{})
	if err != nil {
		return "", fmt.Errorf("%w: slip39: %v", serrors.ErrInvalidGroupSpec, err)
	}

	var lines []string
	for _, group := range shares {
		lines = append(lines, group...)
	}
	return strings.Join(lines, "\n"), nil
}
