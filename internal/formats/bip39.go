package formats

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

func decodeBIP39(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	mnemonic := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	data, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: bip39: %v", serrors.ErrInvalidAlphabet, err)
	}
	return seed.New(data)
}

func encodeBIP39(s *seed.Seed, _ Options) (string, error) {
	mnemonic, err := bip39.NewMnemonic(s.Data)
	if err != nil {
		return "", fmt.Errorf("%w: bip39 requires 16-32 bytes in multiples of 4: %v", serrors.ErrInvalidSecret, err)
	}
	return mnemonic, nil
}
