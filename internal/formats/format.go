package formats

import (
	"fmt"
	"io"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

// Key identifies a format.
type Key int

const (
	Random Key = iota
	Hex
	Btw
	Btwu
	Btwm
	Bits
	Cards
	Dice
	Base6
	Base10
	Ints
	BIP39
	SSKR
	Envelope
	Multipart
	Seed
	SLIP39

	keyCount
)

var keyNames = [keyCount]string{
	Random:    "random",
	Hex:       "hex",
	Btw:       "btw",
	Btwu:      "btwu",
	Btwm:      "btwm",
	Bits:      "bits",
	Cards:     "cards",
	Dice:      "dice",
	Base6:     "base6",
	Base10:    "base10",
	Ints:      "ints",
	BIP39:     "bip39",
	SSKR:      "sskr",
	Envelope:  "envelope",
	Multipart: "multipart",
	Seed:      "seed",
	SLIP39:    "slip39",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey maps a selector name to its Key.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", serrors.ErrUnknownFormat, name, strings.Join(keyNames[:], ", "))
}

// Keys lists every format in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input supplies the raw input text. Decoders that need no text never
// call it.
type Input interface {
	Text() (string, error)
}

// TextInput is an Input over a fixed string.
type TextInput string

func (t TextInput) Text() (string, error) {
	if strings.TrimSpace(string(t)) == "" {
		return "", serrors.ErrNoInput
	}
	return string(t), nil
}

// Options carries the parameters shared by all decoders and encoders.
type Options struct {
	// Count is the number of bytes generated or derived by lossy inputs.
	Count int

	// Low and High bound the ints format.
	Low  int
	High int

	// Random is the entropy source for generation and share splitting.
	Random io.Reader

	MaxFragmentLen  int
	AdditionalParts int

	SSKRSpec   sskr.Spec
	SSKRFormat SSKRFormat
}

// Decoder turns input into a seed.
type Decoder func(in Input, opts Options) (*seed.Seed, error)

// Encoder renders a seed.
type Encoder func(s *seed.Seed, opts Options) (string, error)

// Format describes one entry of the table. Decode or Encode is nil when
// the format only works in one direction.
type Format struct {
	Key        Key
	Reversible bool
	Decode     Decoder
	Encode     Encoder
}

var table = [keyCount]Format{
	Random:    {Key: Random, Reversible: true, Decode: decodeRandom},
	Hex:       {Key: Hex, Reversible: true, Decode: decodeHex, Encode: encodeHex},
	Btw:       {Key: Btw, Reversible: true, Decode: decodeBtw, Encode: encodeBtw},
	Btwu:      {Key: Btwu, Reversible: true, Decode: decodeBtwu, Encode: encodeBtwu},
	Btwm:      {Key: Btwm, Reversible: true, Decode: decodeBtwm, Encode: encodeBtwm},
	Bits:      {Key: Bits, Decode: decodeBits, Encode: encodeBits},
	Cards:     {Key: Cards, Decode: decodeCards, Encode: encodeCards},
	Dice:      {Key: Dice, Decode: decodeDice, Encode: encodeDice},
	Base6:     {Key: Base6, Decode: decodeBase6, Encode: encodeBase6},
	Base10:    {Key: Base10, Decode: decodeBase10, Encode: encodeBase10},
	Ints:      {Key: Ints, Decode: decodeInts, Encode: encodeInts},
	BIP39:     {Key: BIP39, Reversible: true, Decode: decodeBIP39, Encode: encodeBIP39},
	SSKR:      {Key: SSKR, Reversible: true, Decode: decodeSSKR, Encode: encodeSSKR},
	Envelope:  {Key: Envelope, Reversible: true, Decode: decodeEnvelope, Encode: encodeEnvelope},
	Multipart: {Key: Multipart, Reversible: true, Decode: decodeMultipart, Encode: encodeMultipart},
	Seed:      {Key: Seed, Reversible: true, Decode: decodeSeedUR, Encode: encodeSeedUR},
	SLIP39:    {Key: SLIP39, Reversible: true, Decode: decodeSLIP39, Encode: encodeSLIP39},
}

// Lookup returns the table entry for k.
func Lookup(k Key) (Format, error) {
	if k < 0 || k >= keyCount {
		return Format{}, fmt.Errorf("%w: %s", serrors.ErrUnknownFormat, k)
	}
	return table[k], nil
}

// SelectDecoder returns the decoder for k.
func SelectDecoder(k Key) (Decoder, error) {
	f, err := Lookup(k)
	if err != nil {
		return nil, err
	}
	if f.Decode == nil {
		return nil, fmt.Errorf("%w: %s cannot be used as input", serrors.ErrUnknownFormat, k)
	}
	return f.Decode, nil
}

// SelectEncoder returns the encoder for k.
func SelectEncoder(k Key) (Encoder, error) {
	f, err := Lookup(k)
	if err != nil {
		return nil, err
	}
	if f.Encode == nil {
		return nil, fmt.Errorf("%w: %s cannot be used as output", serrors.ErrUnknownFormat, k)
	}
	return f.Encode, nil
}

// IsReversible reports whether k encodes without loss.
func IsReversible(k Key) bool {
	f, err := Lookup(k)
	return err == nil && f.Reversible
}
