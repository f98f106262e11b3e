package ur

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// MultipartEncoder emits fountain-coded parts of a UR.
type MultipartEncoder struct {
	urType  string
	encoder *fountainEncoder
}

// NewMultipartEncoder splits u into fragments of at most maxFragmentLen bytes.
func NewMultipartEncoder(u *UR, maxFragmentLen int) (*MultipartEncoder, error) {
	enc, err := newFountainEncoder(u.CBOR, maxFragmentLen)
	if err != nil {
		return nil, err
	}
	return &MultipartEncoder{urType: u.Type, encoder: enc}, nil
}

// PartsCount is the number of fragments, the minimum needed to decode.
func (e *MultipartEncoder) PartsCount() int {
	return e.encoder.seqLen()
}

// NextPart returns the next part string. Parts beyond PartsCount are mixes.
func (e *MultipartEncoder) NextPart() (string, error) {
	part := e.encoder.nextPart()
	body, err := encMode.Marshal(part)
	if err != nil {
		return "", fmt.Errorf("encoding fountain part: %w", err)
	}
	return fmt.Sprintf("%s%s/%d-%d/%s", scheme, e.urType, part.SeqNum, part.SeqLen,
		bytewords.Encode(body, bytewords.Minimal)), nil
}

// MultipartDecoder collects parts until the message can be reassembled.
type MultipartDecoder struct {
	urType  string
	decoder *fountainDecoder
	single  *UR
}

func NewMultipartDecoder() *MultipartDecoder {
	return &MultipartDecoder{decoder: newFountainDecoder()}
}

// Receive accepts one part string. A single-part UR completes the decoder
// immediately.
func (d *MultipartDecoder) Receive(text string) error {
	if d.IsComplete() {
		return nil
	}

	urType, components, err := splitUR(text)
	if err != nil {
		return err
	}
	if d.urType != "" && urType != d.urType {
		return fmt.Errorf("%w: expected ur:%s parts, got ur:%s", serrors.ErrMetadataTypeMismatch, d.urType, urType)
	}
	d.urType = urType

	switch len(components) {
	case 1:
		payload, err := bytewords.Decode(components[0], bytewords.Minimal)
		if err != nil {
			return err
		}
		d.single = &UR{Type: urType, CBOR: payload}
		return nil
	case 2:
		return d.receivePart(components[0], components[1])
	default:
		return fmt.Errorf("%w: too many UR path components", serrors.ErrDecodeFailure)
	}
}

func (d *MultipartDecoder) receivePart(sequence, body string) error {
	seqNum, seqLen, err := parseSequence(sequence)
	if err != nil {
		return err
	}

	payload, err := bytewords.Decode(body, bytewords.Minimal)
	if err != nil {
		return err
	}

	var part fountainPart
	if err := cbor.Unmarshal(payload, &part); err != nil {
		return fmt.Errorf("%w: fountain part: %v", serrors.ErrDecodeFailure, err)
	}
	if part.SeqNum != seqNum || part.SeqLen != seqLen {
		return fmt.Errorf("%w: sequence %q does not match part header", serrors.ErrDecodeFailure, sequence)
	}
	return d.decoder.receive(part)
}

func parseSequence(s string) (uint32, int, error) {
	num, length, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: invalid sequence component %q", serrors.ErrDecodeFailure, s)
	}
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid sequence number %q", serrors.ErrDecodeFailure, num)
	}
	l, err := strconv.Atoi(length)
	if err != nil || l <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid sequence length %q", serrors.ErrDecodeFailure, length)
	}
	return uint32(n), l, nil
}

// IsComplete reports whether Message can be called.
func (d *MultipartDecoder) IsComplete() bool {
	return d.single != nil || d.decoder.isComplete()
}

// Message returns the reassembled UR.
func (d *MultipartDecoder) Message() (*UR, error) {
	if d.single != nil {
		return d.single, nil
	}
	if !d.decoder.isComplete() {
		return nil, fmt.Errorf("%w: not enough parts to reassemble the message", serrors.ErrDecodeFailure)
	}
	return &UR{Type: d.urType, CBOR: d.decoder.message}, nil
}
