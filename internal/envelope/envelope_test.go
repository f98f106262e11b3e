package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

func sampleEnvelope(t *testing.T) *Envelope {
	t.Helper()
	e, err := NewLeaf([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	e = e.AddType(SeedType)
	if e, err = e.AddAssertion(Name, "Alice"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return e
}

func TestURRoundTrip(t *testing.T) {
	e := sampleEnvelope(t)
	text, err := e.URString()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "ur:envelope/") {
		t.Errorf("Expected ur:envelope/ prefix, got %s", text)
	}

	got, err := ParseURString(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := got.CheckType(SeedType); err != nil {
		t.Errorf("Expected Seed type, got %v", err)
	}

	var data []byte
	if err := got.ExtractSubject(&data); err != nil || !bytes.Equal(data, []byte{1, 2, 3, 4}) {
		t.Errorf("Unexpected subject %x (%v)", data, err)
	}

	var name string
	found, err := got.OptionalObject(Name, &name)
	if err != nil || !found || name != "Alice" {
		t.Errorf("Expected name Alice, got %q found=%v err=%v", name, found, err)
	}

	var note string
	if found, _ := got.OptionalObject(Note, &note); found {
		t.Error("Expected no note assertion")
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	e, _ := NewLeaf("plain")
	if err := e.CheckType(SeedType); !errors.Is(err, serrors.ErrMetadataTypeMismatch) {
		t.Errorf("Expected ErrMetadataTypeMismatch, got %v", err)
	}
}

func TestDuplicatePredicateIsRejected(t *testing.T) {
	e := sampleEnvelope(t)
	e, _ = e.AddAssertion(Name, "Bob")
	var name string
	if _, err := e.OptionalObject(Name, &name); !errors.Is(err, serrors.ErrMetadataTypeMismatch) {
		t.Errorf("Expected ErrMetadataTypeMismatch, got %v", err)
	}
}

func TestWrapEncryptDecrypt(t *testing.T) {
	e := sampleEnvelope(t)
	key, err := NewContentKey(rand.Reader)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wrapped := e.Wrap()
	plainDigest := wrapped.Digest()

	sealed, err := wrapped.EncryptSubject(key, rand.Reader)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if plainDigest != sealed.Digest() {
		t.Error("Expected encryption to preserve the subject digest")
	}

	text, _ := sealed.URString()
	reparsed, err := ParseURString(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	opened, err := reparsed.DecryptSubject(key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	inner, err := opened.Unwrap()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := inner.CheckType(SeedType); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	wrongKey := bytes.Repeat([]byte{9}, KeySize)
	if _, err := reparsed.DecryptSubject(wrongKey); !errors.Is(err, serrors.ErrDecodeFailure) {
		t.Errorf("Expected ErrDecodeFailure with wrong key, got %v", err)
	}
}

func splitSample(t *testing.T, spec sskr.Spec) []*Envelope {
	t.Helper()
	key, _ := NewContentKey(rand.Reader)
	sealed, err := sampleEnvelope(t).Wrap().EncryptSubject(key, rand.Reader)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	shares, err := SSKRSplit(sealed, spec, key, rand.Reader)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return shares
}

func TestSSKRSplitJoin(t *testing.T) {
	spec, _ := sskr.NewSpec(2, []sskr.GroupSpec{{Threshold: 2, Count: 3}, {Threshold: 3, Count: 5}})
	shares := splitSample(t, spec)
	if len(shares) != 8 {
		t.Fatalf("Expected 8 share envelopes, got %d", len(shares))
	}

	// Reparse through UR text to exercise the wire format.
	var parsed []*Envelope
	for _, i := range []int{7, 0, 4, 2, 5} {
		text, err := shares[i].URString()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		env, err := ParseURString(text)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		parsed = append(parsed, env)
	}

	joined, err := SSKRJoin(parsed)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(joined.Assertions(SSKRShare)) != 0 {
		t.Error("Expected sskrShare assertions to be removed")
	}
	if joined.Digest() != sampleEnvelope(t).Wrap().Digest() {
		t.Error("Expected the joined subject to match the wrapped envelope")
	}
	inner, err := joined.Unwrap()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var name string
	if _, err := inner.OptionalObject(Name, &name); err != nil || name != "Alice" {
		t.Errorf("Expected name Alice, got %q (%v)", name, err)
	}
}

func TestSSKRJoinInsufficient(t *testing.T) {
	spec, _ := sskr.NewSpec(1, []sskr.GroupSpec{{Threshold: 2, Count: 3}})
	shares := splitSample(t, spec)

	if _, err := SSKRJoin(shares[:1]); !errors.Is(err, serrors.ErrInsufficientOrInvalidShares) {
		t.Errorf("Expected ErrInsufficientOrInvalidShares, got %v", err)
	}
}

func TestSSKRSplitRequiresSealedSubject(t *testing.T) {
	spec, _ := sskr.NewSpec(1, []sskr.GroupSpec{{Threshold: 1, Count: 1}})
	key, _ := NewContentKey(rand.Reader)
	if _, err := SSKRSplit(sampleEnvelope(t), spec, key, rand.Reader); !errors.Is(err, serrors.ErrMetadataTypeMismatch) {
		t.Errorf("Expected ErrMetadataTypeMismatch, got %v", err)
	}
}

func TestSeedEnvelopeDigest(t *testing.T) {
	data, _ := hex.DecodeString("59f2293a5bce7d4de59e71b4207ac5d2")
	e, err := NewLeaf(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	d := e.AddType(SeedType).Wrap().Digest()

	want := "8b8737ca84f8df0439a0862b467f659731d63d3183b8a97bc630e7aa8f5bee9e"
	if got := hex.EncodeToString(d[:]); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestNodeEncoding(t *testing.T) {
	data, _ := hex.DecodeString("9d347f841a4e2ce6bc886e1aee74d824")
	e, _ := NewLeaf(data)
	e, _ = e.AddAssertion(Name, "SeedName")
	e = e.AddType(SeedType)

	got, err := e.UntaggedCBOR()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// [201(h'9d34...'), {1: 200}, {11: 201("SeedName")}], sorted by digest.
	want := "83d8c9509d347f841a4e2ce6bc886e1aee74d824a10118c8a10bd8c968536565644e616d65"
	if hex.EncodeToString(got) != want {
		t.Errorf("Expected %s, got %x", want, got)
	}

	reparsed, err := decodeUntagged(got)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reparsed.Digest() != e.Digest() {
		t.Error("Expected decoding to preserve the digest")
	}
}

func TestAddAssertionIgnoresDuplicates(t *testing.T) {
	e := sampleEnvelope(t)
	again := e.AddType(SeedType)
	if again.Digest() != e.Digest() {
		t.Error("Expected an identical assertion to be dropped")
	}
}

func TestDecodeRejectsMalformedEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"empty", ""},
		{"node without assertions", "81d8c94101"},
		{"node with a leaf element", "82d8c94101d8c94102"},
		{"two-entry assertion", "a201020304"},
		{"short elided digest", "4401020304"},
		{"unknown tag", "d86f4101"},
		{"encrypted without digest", "d99c42834101" + "4c" + "000000000000000000000000" + "50" + "00000000000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := hex.DecodeString(tt.hex)
			if _, err := decodeUntagged(data); !errors.Is(err, serrors.ErrDecodeFailure) {
				t.Errorf("Expected ErrDecodeFailure, got %v", err)
			}
		})
	}
}

func TestRecordedShareEnvelope(t *testing.T) {
	text := "ur:envelope/lftansfwlrhdcebzgtdmuoasfwjnnyiocfwtiorsrnyazeathtsowloxdsamiagssffxvlgsfrbbhelbetvtlowntksgahrygdkissoygsgypkkgrfvlcllofrlantrdwnhddatansfphdcxlultemsglryauraaesnblndnfglbihmsehtbfsehlsroptkgswdyvdpkmyhpwynnoyamtpsotantkphddazslpadadaeayjpeefensrfbznsnnswzswtynsaurbaiewmnesfwlvefhwylksrhfjpnectjzhdgturmkfr"
	e, err := ParseURString(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !e.IsSealed() {
		t.Error("Expected an encrypted subject")
	}
	if n := len(e.Assertions(SSKRShare)); n != 1 {
		t.Errorf("Expected 1 sskrShare assertion, got %d", n)
	}
	d := e.Subject().Digest()
	if got := hex.EncodeToString(d[:]); got != "8b8737ca84f8df0439a0862b467f659731d63d3183b8a97bc630e7aa8f5bee9e" {
		t.Errorf("Unexpected subject digest %s", got)
	}

	// Re-encoding reproduces the text exactly.
	if again, err := e.URString(); err != nil || again != text {
		t.Errorf("Expected %s, got %s (%v)", text, again, err)
	}
}
