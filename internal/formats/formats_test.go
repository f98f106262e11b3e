package formats

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/seedtool/internal/entropy"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

const testSeedHex = "9d347f841a4e2ce6bc886e1aee74d824"

func testOptions() Options {
	spec, _ := sskr.NewSpec(1, []sskr.GroupSpec{{Threshold: 1, Count: 1}})
	return Options{
		Count:          16,
		Low:            0,
		High:           9,
		Random:         rand.Reader,
		MaxFragmentLen: 500,
		SSKRSpec:       spec,
	}
}

func testSeed(t *testing.T) *seed.Seed {
	t.Helper()
	data, _ := hex.DecodeString(testSeedHex)
	s, err := seed.New(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return s
}

func encode(t *testing.T, k Key, s *seed.Seed, opts Options) string {
	t.Helper()
	enc, err := SelectEncoder(k)
	if err != nil {
		t.Fatalf("SelectEncoder(%s): %v", k, err)
	}
	out, err := enc(s, opts)
	if err != nil {
		t.Fatalf("encode %s: %v", k, err)
	}
	return out
}

func decode(t *testing.T, k Key, text string, opts Options) *seed.Seed {
	t.Helper()
	dec, err := SelectDecoder(k)
	if err != nil {
		t.Fatalf("SelectDecoder(%s): %v", k, err)
	}
	s, err := dec(TextInput(text), opts)
	if err != nil {
		t.Fatalf("decode %s: %v", k, err)
	}
	return s
}

func TestDeterministicRandom(t *testing.T) {
	opts := testOptions()
	opts.Random = entropy.NewDeterministic("TEST")
	s := decode(t, Random, "", opts)
	if got := hex.EncodeToString(s.Data); got != testSeedHex {
		t.Errorf("Expected %s, got %s", testSeedHex, got)
	}
}

func TestLossyGoldenVectors(t *testing.T) {
	tests := []struct {
		key     Key
		encoded string
		decoded string
	}{
		{Base6, "3123121543215241", "cb97f8ff03b3434258a7a8974e3187a0"},
		{Base10, "6245132875418481", "3f3830e7e4d4f95c3e037630c6ae811a"},
		{Bits, "1001000111001010", "980947e4f8cd49459819d9453fca085f"},
		{Dice, "4234232654326352", "eefa19b88c5846e71fcb52d007066ae4"},
		{Cards, "6hjckdah6c4dtc8skh2htd6ctsjd5s8c", "1d0f2f3b502256cf56e3eaaa9f95ef71"},
		{Ints, "6 2 4 5 1 3 2 8 7 5 4 1 8 4 8 1", "19a7830e032c0e027d176162112ee67e"},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			opts := testOptions()
			if got := encode(t, tt.key, testSeed(t), opts); got != tt.encoded {
				t.Errorf("Expected %s output %s, got %s", tt.key, tt.encoded, got)
			}
			got := decode(t, tt.key, tt.encoded, opts)
			if hex.EncodeToString(got.Data) != tt.decoded {
				t.Errorf("Expected %s input to give %s, got %x", tt.key, tt.decoded, got.Data)
			}
		})
	}
}

func TestLossyInputsValidateAlphabet(t *testing.T) {
	tests := []struct {
		key  Key
		text string
	}{
		{Bits, "0102"},
		{Base6, "123456"},
		{Base10, "12a4"},
		{Dice, "1230"},
		{Cards, "6hj"},
		{Cards, "xh6c"},
		{Cards, "6x6c"},
		{Ints, "1 2 300"},
		{Hex, "zz"},
	}

	for _, tt := range tests {
		t.Run(tt.key.String()+"/"+tt.text, func(t *testing.T) {
			dec, _ := SelectDecoder(tt.key)
			if _, err := dec(TextInput(tt.text), testOptions()); !errors.Is(err, serrors.ErrInvalidAlphabet) {
				t.Errorf("Expected ErrInvalidAlphabet, got %v", err)
			}
		})
	}
}

func TestDigitInputCountLimit(t *testing.T) {
	opts := testOptions()
	opts.Count = 33
	dec, _ := SelectDecoder(Base10)
	if _, err := dec(TextInput("123"), opts); !errors.Is(err, serrors.ErrInsufficientEntropy) {
		t.Errorf("Expected ErrInsufficientEntropy, got %v", err)
	}

	opts.Count = 64
	s := decode(t, Cards, "ahkc", opts)
	if len(s.Data) != 64 {
		t.Errorf("Expected cards to expand to 64 bytes, got %d", len(s.Data))
	}
}

func TestIntsRespectsBounds(t *testing.T) {
	opts := testOptions()
	opts.Low, opts.High = 1, 6
	got := encode(t, Ints, testSeed(t), opts)
	for _, f := range strings.Fields(got) {
		if f < "1" || f > "6" || len(f) != 1 {
			t.Fatalf("Value %s outside [1, 6]", f)
		}
	}

	opts.Low, opts.High = 6, 6
	enc, _ := SelectEncoder(Ints)
	if _, err := enc(testSeed(t), opts); !errors.Is(err, serrors.ErrRange) {
		t.Errorf("Expected ErrRange, got %v", err)
	}
}

func TestBytewordsVectors(t *testing.T) {
	standard := "next edge lamb liar city girl draw visa roof logo jolt city waxy jury trip dark loud duty obey monk"
	tests := []struct {
		key  Key
		text string
	}{
		{Btw, standard},
		{Btwu, strings.ReplaceAll(standard, " ", "-")},
		{Btwm, "nteelblrcygldwvarflojtcywyjytpdklddyoymk"},
		{Hex, testSeedHex},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := encode(t, tt.key, testSeed(t), testOptions()); got != tt.text {
				t.Errorf("Expected %s, got %s", tt.text, got)
			}
			if got := decode(t, tt.key, tt.text, testOptions()); !got.DataEqual(testSeed(t)) {
				t.Errorf("Expected %s, got %x", testSeedHex, got.Data)
			}
		})
	}
}

func TestBIP39(t *testing.T) {
	zero, _ := seed.New(make([]byte, 16))
	want := strings.TrimSpace(strings.Repeat("abandon ", 11)) + " about"
	if got := encode(t, BIP39, zero, testOptions()); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	got := decode(t, BIP39, "  Abandon abandon abandon abandon abandon abandon\nabandon abandon abandon abandon abandon about ", testOptions())
	if !got.DataEqual(zero) {
		t.Errorf("Expected zero entropy, got %x", got.Data)
	}

	odd, _ := seed.New(make([]byte, 15))
	enc, _ := SelectEncoder(BIP39)
	if _, err := enc(odd, testOptions()); !errors.Is(err, serrors.ErrInvalidSecret) {
		t.Errorf("Expected ErrInvalidSecret, got %v", err)
	}
}

func metadataSeed(t *testing.T) *seed.Seed {
	t.Helper()
	s := testSeed(t)
	date := time.Date(2024, 6, 15, 1, 2, 0, 0, time.UTC)
	s.Name = "SeedName"
	s.Note = "This is the note"
	s.CreationDate = &date
	return s
}

func TestMetadataFormatsRoundTrip(t *testing.T) {
	for _, k := range []Key{Envelope, Seed, Multipart} {
		t.Run(k.String(), func(t *testing.T) {
			s := metadataSeed(t)
			got := decode(t, k, encode(t, k, s, testOptions()), testOptions())
			if !s.Equal(got) {
				t.Errorf("Expected %+v, got %+v", s, got)
			}
		})
	}
}

func TestEnvelopeOutputPrefix(t *testing.T) {
	if got := encode(t, Envelope, testSeed(t), testOptions()); !strings.HasPrefix(got, "ur:envelope/") {
		t.Errorf("Expected ur:envelope/ prefix, got %s", got)
	}
	if got := encode(t, Seed, testSeed(t), testOptions()); !strings.HasPrefix(got, "ur:seed/") {
		t.Errorf("Expected ur:seed/ prefix, got %s", got)
	}
}

func TestMultipartFromLaterParts(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i * 3)
	}
	s, _ := seed.New(data)
	s.Name = "SeedName"
	s.Note = "This is the note"

	opts := testOptions()
	opts.MaxFragmentLen = 20
	opts.AdditionalParts = 50

	parts := strings.Split(encode(t, Multipart, s, opts), "\n")
	if len(parts) < 55 {
		t.Fatalf("Expected at least 55 parts, got %d", len(parts))
	}

	got := decode(t, Multipart, strings.Join(parts[5:], " "), opts)
	if !s.Equal(got) {
		t.Errorf("Expected %+v, got %+v", s, got)
	}
}

func TestMultipartInsufficientParts(t *testing.T) {
	opts := testOptions()
	opts.MaxFragmentLen = 20
	parts := strings.Split(encode(t, Multipart, metadataSeed(t), opts), "\n")

	dec, _ := SelectDecoder(Multipart)
	if _, err := dec(TextInput(parts[0]), opts); !errors.Is(err, serrors.ErrInsufficientOrInvalidShares) {
		t.Errorf("Expected ErrInsufficientOrInvalidShares, got %v", err)
	}
}

func TestSLIP39RoundTrip(t *testing.T) {
	opts := testOptions()
	opts.SSKRSpec, _ = sskr.NewSpec(1, []sskr.GroupSpec{{Threshold: 2, Count: 3}})

	lines := strings.Split(encode(t, SLIP39, testSeed(t), opts), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 mnemonics, got %d", len(lines))
	}

	got := decode(t, SLIP39, lines[2]+"\n\n"+lines[0]+"\n", opts)
	if !got.DataEqual(testSeed(t)) {
		t.Errorf("Expected %s, got %x", testSeedHex, got.Data)
	}
}

func TestTextInputRejectsEmpty(t *testing.T) {
	if _, err := TextInput(" \n").Text(); !errors.Is(err, serrors.ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}
