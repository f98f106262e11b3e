package seed

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

func fullSeed(t *testing.T) *Seed {
	t.Helper()
	s, err := New([]byte{0x9d, 0x34, 0x7f, 0x84, 0x1a, 0x4e, 0x2c, 0xe6})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	s.Name = "Alice"
	s.Note = "This is a note"
	s.CreationDate = &date
	return s
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, serrors.ErrEmptyPayload) {
		t.Errorf("Expected ErrEmptyPayload, got %v", err)
	}
}

func TestEquality(t *testing.T) {
	a := fullSeed(t)
	b := fullSeed(t)
	if !a.Equal(b) {
		t.Error("Expected identical seeds to be equal")
	}

	b.Note = ""
	if a.Equal(b) {
		t.Error("Expected seeds with different notes to differ")
	}
	if !a.DataEqual(b) {
		t.Error("Expected data-only equality to ignore metadata")
	}

	b = fullSeed(t)
	b.CreationDate = nil
	if a.Equal(b) || b.Equal(a) {
		t.Error("Expected a missing date to break full equality")
	}
}

func TestCBORRoundTrip(t *testing.T) {
	s := fullSeed(t)
	data, err := s.MarshalCBOR()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 0xd9 0x9d 0x6c is tag 40300.
	if !bytes.HasPrefix(data, []byte{0xd9, 0x9d, 0x6c}) {
		t.Errorf("Expected tag 40300 prefix, got %x", data[:3])
	}

	var got Seed
	if err := got.UnmarshalCBOR(data); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !s.Equal(&got) {
		t.Errorf("Expected %+v, got %+v", s, got)
	}
}

func TestUnmarshalAcceptsLegacyAndUntagged(t *testing.T) {
	m := seedMap{Data: []byte{1, 2, 3}, Name: "n"}

	legacy, _ := cbor.Marshal(cbor.Tag{Number: TagSeedLegacy, Content: m})
	untagged, _ := cbor.Marshal(m)
	wrongTag, _ := cbor.Marshal(cbor.Tag{Number: 999, Content: m})

	for name, data := range map[string][]byte{"legacy": legacy, "untagged": untagged} {
		var s Seed
		if err := s.UnmarshalCBOR(data); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if !bytes.Equal(s.Data, []byte{1, 2, 3}) || s.Name != "n" {
			t.Errorf("%s: unexpected seed %+v", name, s)
		}
	}

	var s Seed
	if err := s.UnmarshalCBOR(wrongTag); !errors.Is(err, serrors.ErrMetadataTypeMismatch) {
		t.Errorf("Expected ErrMetadataTypeMismatch, got %v", err)
	}
}

func TestUnmarshalRejectsEmptyData(t *testing.T) {
	data, _ := cbor.Marshal(seedMap{Data: []byte{}})
	var s Seed
	if err := s.UnmarshalCBOR(data); !errors.Is(err, serrors.ErrEmptyPayload) {
		t.Errorf("Expected ErrEmptyPayload, got %v", err)
	}
}

func TestURRoundTrip(t *testing.T) {
	s := fullSeed(t)
	u, err := s.UR()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	parsed, err := ur.Parse(u.String())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := FromUR(parsed)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !s.Equal(got) {
		t.Errorf("Expected %+v, got %+v", s, got)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		seed func(t *testing.T) *Seed
	}{
		{"full metadata", fullSeed},
		{"data only", func(t *testing.T) *Seed {
			s, _ := New([]byte{1, 2, 3, 4})
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.seed(t)
			e, err := s.ToEnvelope()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			got, err := FromEnvelope(e)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !s.Equal(got) {
				t.Errorf("Expected %+v, got %+v", s, got)
			}
		})
	}
}
