package formats

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/seedtool/internal/envelope"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

func decodeMultipart(in Input, _ Options) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}

	decoder := ur.NewMultipartDecoder()
	for _, part := range strings.Fields(text) {
		if err := decoder.Receive(part); err != nil {
			return nil, err
		}
		if decoder.IsComplete() {
			break
		}
	}
	if !decoder.IsComplete() {
		return nil, fmt.Errorf("%w: not enough multipart parts to reassemble the envelope", serrors.ErrInsufficientOrInvalidShares)
	}

	u, err := decoder.Message()
	if err != nil {
		return nil, err
	}
	e, err := envelope.FromUR(u)
	if err != nil {
		return nil, err
	}
	return seed.FromEnvelope(e)
}

func encodeMultipart(s *seed.Seed, opts Options) (string, error) {
	if opts.AdditionalParts < 0 {
		return "", fmt.Errorf("%w: additional parts %d must not be negative", serrors.ErrRange, opts.AdditionalParts)
	}
	e, err := s.ToEnvelope()
	if err != nil {
		return "", err
	}
	u, err := e.UR()
	if err != nil {
		return "", err
	}

	encoder, err := ur.NewMultipartEncoder(u, opts.MaxFragmentLen)
	if err != nil {
		return "", err
	}

	count := encoder.PartsCount() + opts.AdditionalParts
	parts := make([]string, count)
	for i := range parts {
		if parts[i], err = encoder.NextPart(); err != nil {
			return "", err
		}
	}
	return strings.Join(parts, "\n"), nil
}
