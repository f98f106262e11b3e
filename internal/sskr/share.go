package sskr

import (
	"fmt"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

const metadataLen = 5

// Share is one member share with its group metadata.
type Share struct {
	Identifier      uint16
	GroupIndex      int
	GroupThreshold  int
	GroupCount      int
	MemberIndex     int
	MemberThreshold int
	Value           []byte
}

// Bytes serializes the share as metadata followed by the value.
func (s Share) Bytes() []byte {
	out := make([]byte, metadataLen, metadataLen+len(s.Value))
	out[0] = byte(s.Identifier >> 8)
	out[1] = byte(s.Identifier)
	out[2] = byte((s.GroupThreshold-1)<<4 | (s.GroupCount - 1))
	out[3] = byte(s.GroupIndex<<4 | (s.MemberThreshold - 1))
	out[4] = byte(s.MemberIndex & 0x0f)
	return append(out, s.Value...)
}

// ParseShare reads the serialized form produced by Bytes.
func ParseShare(data []byte) (Share, error) {
	if len(data) < metadataLen+MinSecretLen {
		return Share{}, fmt.Errorf("%w: share of %d bytes is too short", serrors.ErrDecodeFailure, len(data))
	}

	s := Share{
		Identifier:      uint16(data[0])<<8 | uint16(data[1]),
		GroupThreshold:  int(data[2]>>4) + 1,
		GroupCount:      int(data[2]&0x0f) + 1,
		GroupIndex:      int(data[3] >> 4),
		MemberThreshold: int(data[3]&0x0f) + 1,
		MemberIndex:     int(data[4] & 0x0f),
		Value:           append([]byte(nil), data[metadataLen:]...),
	}

	if data[4]>>4 != 0 {
		return Share{}, fmt.Errorf("%w: reserved share bits are set", serrors.ErrDecodeFailure)
	}
	if s.GroupThreshold > s.GroupCount {
		return Share{}, fmt.Errorf("%w: group threshold exceeds group count", serrors.ErrDecodeFailure)
	}
	if err := validateSecret(s.Value); err != nil {
		return Share{}, fmt.Errorf("%w: %v", serrors.ErrDecodeFailure, err)
	}
	return s, nil
}
