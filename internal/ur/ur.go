package ur

import (
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

const scheme = "ur:"

// UR is a typed CBOR payload.
type UR struct {
	Type string
	CBOR []byte
}

// New validates the type name and wraps the payload.
func New(urType string, payload []byte) (*UR, error) {
	if !isValidType(urType) {
		return nil, fmt.Errorf("%w: invalid UR type %q", serrors.ErrDecodeFailure, urType)
	}
	return &UR{Type: urType, CBOR: payload}, nil
}

// FromValue CBOR-encodes v and wraps it.
func FromValue(urType string, v any) (*UR, error) {
	payload, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", urType, err)
	}
	return New(urType, payload)
}

// String renders the single-part form.
func (u *UR) String() string {
	return scheme + u.Type + "/" + bytewords.Encode(u.CBOR, bytewords.Minimal)
}

// Unmarshal decodes the CBOR payload into v.
func (u *UR) Unmarshal(v any) error {
	if err := cbor.Unmarshal(u.CBOR, v); err != nil {
		return fmt.Errorf("%w: %s payload: %v", serrors.ErrDecodeFailure, u.Type, err)
	}
	return nil
}

// Parse reads a single-part UR string.
func Parse(text string) (*UR, error) {
	urType, components, err := splitUR(text)
	if err != nil {
		return nil, err
	}
	if len(components) != 1 {
		return nil, fmt.Errorf("%w: expected a single-part UR", serrors.ErrDecodeFailure)
	}

	payload, err := bytewords.Decode(components[0], bytewords.Minimal)
	if err != nil {
		return nil, err
	}
	return New(urType, payload)
}

// ParseTyped reads a single-part UR string and requires its type.
func ParseTyped(text, urType string) (*UR, error) {
	u, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if u.Type != urType {
		return nil, fmt.Errorf("%w: expected ur:%s, got ur:%s", serrors.ErrMetadataTypeMismatch, urType, u.Type)
	}
	return u, nil
}

// splitUR returns the lowercased type and the remaining path components.
func splitUR(text string) (string, []string, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if !strings.HasPrefix(text, scheme) {
		return "", nil, fmt.Errorf("%w: missing %q prefix", serrors.ErrDecodeFailure, scheme)
	}

	parts := strings.Split(strings.TrimPrefix(text, scheme), "/")
	if len(parts) < 2 {
		return "", nil, fmt.Errorf("%w: missing UR path components", serrors.ErrDecodeFailure)
	}
	if !isValidType(parts[0]) {
		return "", nil, fmt.Errorf("%w: invalid UR type %q", serrors.ErrDecodeFailure, parts[0])
	}
	return parts[0], parts[1:], nil
}

func isValidType(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()
