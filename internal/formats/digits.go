package formats

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/seedtool/internal/entropy"
	"github.com/PolarWolf314/seedtool/internal/radix"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

// Digit string formats hash the text itself, matching
// https://iancoleman.io/bip39/, after checking every digit.

type digitAlphabet struct {
	name      string
	low, high int
}

var (
	bitsAlphabet   = digitAlphabet{"bits", 0, 1}
	base6Alphabet  = digitAlphabet{"base6", 0, 5}
	base10Alphabet = digitAlphabet{"base10", 0, 9}
	diceAlphabet   = digitAlphabet{"dice", 1, 6}
)

func (a digitAlphabet) decode(in Input, opts Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if _, err := radix.ParseDigitString(text, a.low, a.high); err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	data, err := entropy.DirectHash([]byte(text), opts.Count)
	if err != nil {
		return nil, err
	}
	return seed.New(data)
}

func (a digitAlphabet) encode(s *seed.Seed, _ Options) (string, error) {
	return radix.RenderInts(s.Data, a.low, a.high, "")
}

func decodeBits(in Input, opts Options) (*seed.Seed, error)   { return bitsAlphabet.decode(in, opts) }
func decodeBase6(in Input, opts Options) (*seed.Seed, error)  { return base6Alphabet.decode(in, opts) }
func decodeBase10(in Input, opts Options) (*seed.Seed, error) { return base10Alphabet.decode(in, opts) }
func decodeDice(in Input, opts Options) (*seed.Seed, error)   { return diceAlphabet.decode(in, opts) }

func encodeBits(s *seed.Seed, opts Options) (string, error)   { return bitsAlphabet.encode(s, opts) }
func encodeBase6(s *seed.Seed, opts Options) (string, error)  { return base6Alphabet.encode(s, opts) }
func encodeBase10(s *seed.Seed, opts Options) (string, error) { return base10Alphabet.encode(s, opts) }
func encodeDice(s *seed.Seed, opts Options) (string, error)   { return diceAlphabet.encode(s, opts) }
