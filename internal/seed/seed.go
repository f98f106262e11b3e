// Package seed defines the canonical seed value exchanged by every format.
package seed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolarWolf314/seedtool/internal/envelope"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

const (
	TagSeed       = 40300
	TagSeedLegacy = 300

	URType = "seed"
)

// Seed is secret payload bytes plus optional metadata. Empty Name and
// Note mean absent, as does a nil CreationDate.
type Seed struct {
	Data         []byte
	Name         string
	Note         string
	CreationDate *time.Time
}

// New returns a seed with no metadata. data must be non-empty.
func New(data []byte) (*Seed, error) {
	if len(data) == 0 {
		return nil, serrors.ErrEmptyPayload
	}
	return &Seed{Data: append([]byte(nil), data...)}, nil
}

// Equal compares payload and all metadata.
func (s *Seed) Equal(other *Seed) bool {
	if !s.DataEqual(other) || s.Name != other.Name || s.Note != other.Note {
		return false
	}
	if s.CreationDate == nil || other.CreationDate == nil {
		return s.CreationDate == nil && other.CreationDate == nil
	}
	return s.CreationDate.Equal(*other.CreationDate)
}

// DataEqual compares payload only.
func (s *Seed) DataEqual(other *Seed) bool {
	return bytes.Equal(s.Data, other.Data)
}

type seedMap struct {
	Data         []byte     `cbor:"1,keyasint"`
	CreationDate *time.Time `cbor:"2,keyasint,omitempty"`
	Name         string     `cbor:"3,keyasint,omitempty"`
	Note         string     `cbor:"4,keyasint,omitempty"`
}

var encMode = func() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeUnixDynamic
	opts.TimeTag = cbor.EncTagRequired
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// MarshalCBOR encodes the seed as a map tagged 40300.
func (s *Seed) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(cbor.Tag{Number: TagSeed, Content: seedMap{
		Data:         s.Data,
		CreationDate: s.CreationDate,
		Name:         s.Name,
		Note:         s.Note,
	}})
}

// UnmarshalCBOR accepts the map tagged 40300, the legacy tag 300, or no tag.
func (s *Seed) UnmarshalCBOR(data []byte) error {
	content := data
	if len(data) > 0 && data[0]>>5 == 6 {
		var tag cbor.RawTag
		if err := cbor.Unmarshal(data, &tag); err != nil {
			return fmt.Errorf("%w: seed: %v", serrors.ErrDecodeFailure, err)
		}
		if tag.Number != TagSeed && tag.Number != TagSeedLegacy {
			return fmt.Errorf("%w: unexpected seed tag %d", serrors.ErrMetadataTypeMismatch, tag.Number)
		}
		content = tag.Content
	}

	var m seedMap
	if err := cbor.Unmarshal(content, &m); err != nil {
		return fmt.Errorf("%w: seed map: %v", serrors.ErrMetadataTypeMismatch, err)
	}
	if len(m.Data) == 0 {
		return fmt.Errorf("%w: seed map has no data", serrors.ErrEmptyPayload)
	}

	*s = Seed{Data: m.Data, Name: m.Name, Note: m.Note, CreationDate: m.CreationDate}
	return nil
}

// UR renders the seed as ur:seed. The UR payload is the untagged map.
func (s *Seed) UR() (*ur.UR, error) {
	payload, err := encMode.Marshal(seedMap{
		Data:         s.Data,
		CreationDate: s.CreationDate,
		Name:         s.Name,
		Note:         s.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding seed: %w", err)
	}
	return ur.New(URType, payload)
}

// FromUR decodes a ur:seed. Tagged payloads are accepted too.
func FromUR(u *ur.UR) (*Seed, error) {
	if u.Type != URType && u.Type != "crypto-seed" {
		return nil, fmt.Errorf("%w: expected ur:%s, got ur:%s", serrors.ErrMetadataTypeMismatch, URType, u.Type)
	}
	s := &Seed{}
	if err := s.UnmarshalCBOR(u.CBOR); err != nil {
		return nil, err
	}
	return s, nil
}

// ToEnvelope builds a leaf envelope of the payload asserting isA Seed and
// any present metadata.
func (s *Seed) ToEnvelope() (*envelope.Envelope, error) {
	e, err := envelope.NewLeaf(s.Data)
	if err != nil {
		return nil, err
	}
	e = e.AddType(envelope.SeedType)
	if s.CreationDate != nil {
		if e, err = e.AddAssertion(envelope.Date, *s.CreationDate); err != nil {
			return nil, err
		}
	}
	if s.Name != "" {
		if e, err = e.AddAssertion(envelope.Name, s.Name); err != nil {
			return nil, err
		}
	}
	if s.Note != "" {
		if e, err = e.AddAssertion(envelope.Note, s.Note); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// FromEnvelope reverses ToEnvelope.
func FromEnvelope(e *envelope.Envelope) (*Seed, error) {
	if err := e.CheckType(envelope.SeedType); err != nil {
		return nil, err
	}

	var data []byte
	if err := e.ExtractSubject(&data); err != nil {
		return nil, err
	}
	s, err := New(data)
	if err != nil {
		return nil, err
	}

	if _, err := e.OptionalObject(envelope.Name, &s.Name); err != nil {
		return nil, err
	}
	if _, err := e.OptionalObject(envelope.Note, &s.Note); err != nil {
		return nil, err
	}
	var date time.Time
	found, err := e.OptionalObject(envelope.Date, &date)
	if err != nil {
		return nil, err
	}
	if found {
		s.CreationDate = &date
	}
	return s, nil
}
