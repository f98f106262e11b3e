package envelope

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/chacha20poly1305"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

const KeySize = chacha20poly1305.KeySize

// encryptedMessage is the IETF ChaCha20-Poly1305 ciphertext of a subject.
// The additional data is the subject digest tagged 40001.
type encryptedMessage struct {
	ciphertext []byte
	nonce      []byte
	auth       []byte
	aad        []byte
}

func (m *encryptedMessage) marshal() ([]byte, error) {
	items := []any{m.ciphertext, m.nonce, m.auth}
	if len(m.aad) > 0 {
		items = append(items, m.aad)
	}
	body, err := encMode.Marshal(items)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(cbor.RawTag{Number: TagEncrypted, Content: body})
}

func unmarshalEncrypted(data []byte) (*encryptedMessage, error) {
	var items [][]byte
	if err := decMode.Unmarshal(data, &items); err != nil || len(items) < 3 || len(items) > 4 {
		return nil, fmt.Errorf("%w: encrypted message must hold 3 or 4 byte strings", serrors.ErrDecodeFailure)
	}
	m := &encryptedMessage{ciphertext: items[0], nonce: items[1], auth: items[2]}
	if len(items) == 4 {
		m.aad = items[3]
	}
	if len(m.nonce) != chacha20poly1305.NonceSize || len(m.auth) != chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: encrypted message nonce or tag has the wrong size", serrors.ErrDecodeFailure)
	}
	return m, nil
}

func (m *encryptedMessage) digest() (Digest, error) {
	var tag cbor.RawTag
	if err := decMode.Unmarshal(m.aad, &tag); err != nil || tag.Number != TagDigest {
		return Digest{}, fmt.Errorf("%w: encrypted subject carries no digest", serrors.ErrDecodeFailure)
	}
	var d []byte
	if err := decMode.Unmarshal(tag.Content, &d); err != nil || len(d) != sha256.Size {
		return Digest{}, fmt.Errorf("%w: encrypted subject digest", serrors.ErrDecodeFailure)
	}
	return Digest(d), nil
}

// NewContentKey reads a fresh symmetric key from random.
func NewContentKey(random io.Reader) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(random, key); err != nil {
		return nil, fmt.Errorf("failed to generate content key: %w", err)
	}
	return key, nil
}

// EncryptSubject seals the subject under key and keeps the assertions in
// the clear.
func (e *Envelope) EncryptSubject(key []byte, random io.Reader) (*Envelope, error) {
	subject := e.Subject()
	if subject.kind == kindEncrypted {
		return nil, fmt.Errorf("%w: subject is already encrypted", serrors.ErrMetadataTypeMismatch)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("content key must be exactly %d bytes: %w", KeySize, err)
	}

	plaintext, err := subject.MarshalCBOR()
	if err != nil {
		return nil, err
	}
	aad, err := encMode.Marshal(cbor.Tag{Number: TagDigest, Content: subject.digest[:]})
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, aad)
	n := len(sealed) - aead.Overhead()
	encrypted := &Envelope{
		kind:   kindEncrypted,
		digest: subject.digest,
		sealed: &encryptedMessage{ciphertext: sealed[:n], nonce: nonce, auth: sealed[n:], aad: aad},
	}
	return e.replaceSubject(encrypted), nil
}

// DecryptSubject opens a sealed subject and verifies its digest.
func (e *Envelope) DecryptSubject(key []byte) (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != kindEncrypted {
		return nil, fmt.Errorf("%w: subject is not encrypted", serrors.ErrMetadataTypeMismatch)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("content key must be exactly %d bytes: %w", KeySize, err)
	}

	msg := subject.sealed
	sealed := append(append([]byte(nil), msg.ciphertext...), msg.auth...)
	plaintext, err := aead.Open(nil, msg.nonce, sealed, msg.aad)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt subject", serrors.ErrDecodeFailure)
	}

	opened := &Envelope{}
	if err := opened.UnmarshalCBOR(plaintext); err != nil {
		return nil, err
	}
	if opened.digest != subject.digest {
		return nil, fmt.Errorf("%w: decrypted subject digest", serrors.ErrChecksum)
	}
	return e.replaceSubject(opened), nil
}
