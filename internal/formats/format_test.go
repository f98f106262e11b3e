package formats

import (
	"errors"
	"testing"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

func TestTableIsComplete(t *testing.T) {
	for _, k := range Keys() {
		f, err := Lookup(k)
		if err != nil {
			t.Fatalf("Lookup(%s): unexpected error: %v", k, err)
		}
		if f.Key != k {
			t.Errorf("Table entry %d has key %s", k, f.Key)
		}
		if f.Decode == nil {
			t.Errorf("Format %s has no decoder", k)
		}
		if f.Encode == nil && k != Random {
			t.Errorf("Format %s has no encoder", k)
		}
	}
}

func TestParseKey(t *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKey(%q): expected %s, got %s (%v)", k.String(), k, got, err)
		}
	}

	if got, err := ParseKey(" BTWM "); err != nil || got != Btwm {
		t.Errorf("Expected case-insensitive match, got %s (%v)", got, err)
	}
	if _, err := ParseKey("base58"); !errors.Is(err, serrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestRandomIsInputOnly(t *testing.T) {
	if _, err := SelectDecoder(Random); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := SelectEncoder(Random); !errors.Is(err, serrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if _, err := SelectEncoder(keyCount); !errors.Is(err, serrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat for out of range key, got %v", err)
	}
}

func TestReversibility(t *testing.T) {
	lossy := map[Key]bool{Bits: true, Cards: true, Dice: true, Base6: true, Base10: true, Ints: true}
	for _, k := range Keys() {
		if got := IsReversible(k); got == lossy[k] {
			t.Errorf("IsReversible(%s) = %v", k, got)
		}
	}
}

func TestParseSSKRFormat(t *testing.T) {
	for _, name := range []string{"envelope", "btw", "btwm", "btwu", "ur"} {
		f, err := ParseSSKRFormat(name)
		if err != nil || f.String() != name {
			t.Errorf("ParseSSKRFormat(%q): got %s (%v)", name, f, err)
		}
	}
	if _, err := ParseSSKRFormat("hex"); !errors.Is(err, serrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}
