package formats

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/seedtool/internal/entropy"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/radix"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

// Card order follows https://github.com/iancoleman/bip39/blob/master/src/js/entropy.js
const (
	cardRanks = "a23456789tjqk"
	cardSuits = "cdhs"
)

// parseCards maps rank+suit pairs to indexes suit*13 + rank.
func parseCards(text string) ([]byte, error) {
	text = strings.ToLower(text)
	if len(text)%2 != 0 {
		return nil, fmt.Errorf("%w: cards string must have an even number of characters", serrors.ErrInvalidAlphabet)
	}

	out := make([]byte, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		rank := strings.IndexByte(cardRanks, text[i])
		if rank < 0 {
			return nil, fmt.Errorf("%w: invalid card rank %q, allowed [A,2-9,T,J,Q,K]", serrors.ErrInvalidAlphabet, text[i])
		}
		suit := strings.IndexByte(cardSuits, text[i+1])
		if suit < 0 {
			return nil, fmt.Errorf("%w: invalid card suit %q, allowed [C,D,H,S]", serrors.ErrInvalidAlphabet, text[i+1])
		}
		out = append(out, byte(suit*13+rank))
	}
	return out, nil
}

func cardSymbol(n int) string {
	return string([]byte{cardRanks[n%13], cardSuits[n/13]})
}

func decodeCards(in Input, opts Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	indexes, err := parseCards(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	data, err := entropy.Expand(indexes, opts.Count)
	if err != nil {
		return nil, err
	}
	return seed.New(data)
}

func encodeCards(s *seed.Seed, _ Options) (string, error) {
	return radix.RenderAlphabet(s.Data, 52, cardSymbol), nil
}
