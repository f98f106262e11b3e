package formats

import (
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	"github.com/PolarWolf314/seedtool/internal/envelope"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/sskr"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

const (
	tagSSKRShare       = envelope.TagSSKRShare
	tagSSKRShareLegacy = 309

	urTypeSSKR       = "sskr"
	urTypeSSKRLegacy = "crypto-sskr"
)

// SSKRFormat selects how SSKR shares are rendered.
type SSKRFormat int

const (
	SSKREnvelope SSKRFormat = iota
	SSKRBtw
	SSKRBtwm
	SSKRBtwu
	SSKRUR
)

var sskrFormatNames = []string{
	SSKREnvelope: "envelope",
	SSKRBtw:      "btw",
	SSKRBtwm:     "btwm",
	SSKRBtwu:     "btwu",
	SSKRUR:       "ur",
}

func (f SSKRFormat) String() string {
	if f < 0 || int(f) >= len(sskrFormatNames) {
		return fmt.Sprintf("SSKRFormat(%d)", int(f))
	}
	return sskrFormatNames[f]
}

// ParseSSKRFormat maps a sub-encoding name to its SSKRFormat.
func ParseSSKRFormat(name string) (SSKRFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sskrFormatNames {
		if n == name {
			return SSKRFormat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: sskr format %q (expected one of %s)", serrors.ErrUnknownFormat, name, strings.Join(sskrFormatNames, ", "))
}

var cborEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func encodeSSKR(s *seed.Seed, opts Options) (string, error) {
	if opts.Random == nil {
		return "", fmt.Errorf("no random source configured")
	}

	if opts.SSKRFormat == SSKREnvelope {
		return encodeSSKREnvelopes(s, opts)
	}

	groups, err := sskr.Generate(opts.SSKRSpec, s.Data, opts.Random)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, group := range groups {
		for _, share := range group {
			line, err := renderShare(share.Bytes(), opts.SSKRFormat)
			if err != nil {
				return "", err
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func renderShare(share []byte, format SSKRFormat) (string, error) {
	if format == SSKRUR {
		u, err := ur.FromValue(urTypeSSKR, share)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}

	tagged, err := cborEncMode.Marshal(cbor.Tag{Number: tagSSKRShare, Content: share})
	if err != nil {
		return "", fmt.Errorf("encoding share: %w", err)
	}
	switch format {
	case SSKRBtw:
		return bytewords.Encode(tagged, bytewords.Standard), nil
	case SSKRBtwm:
		return bytewords.Encode(tagged, bytewords.Minimal), nil
	case SSKRBtwu:
		return bytewords.Encode(tagged, bytewords.URI), nil
	default:
		return "", fmt.Errorf("%w: %s", serrors.ErrUnknownFormat, format)
	}
}

// encodeSSKREnvelopes seals the wrapped seed envelope under a fresh content
// key and splits the key into share envelopes.
func encodeSSKREnvelopes(s *seed.Seed, opts Options) (string, error) {
	e, err := s.ToEnvelope()
	if err != nil {
		return "", err
	}

	contentKey, err := envelope.NewContentKey(opts.Random)
	if err != nil {
		return "", err
	}
	sealed, err := e.Wrap().EncryptSubject(contentKey, opts.Random)
	if err != nil {
		return "", err
	}

	shares, err := envelope.SSKRSplit(sealed, opts.SSKRSpec, contentKey, opts.Random)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(shares))
	for i, share := range shares {
		if lines[i], err = share.URString(); err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}

func decodeSSKR(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	return ResolveSSKR(text)
}
