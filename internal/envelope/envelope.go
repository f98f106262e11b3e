package envelope

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

const (
	TagEnvelope   = 200
	TagLeaf       = 201
	TagKnownValue = 40000
	TagDigest     = 40001
	TagEncrypted  = 40002

	URType = "envelope"
)

// KnownValue is a registered predicate or type.
type KnownValue uint64

const (
	IsA       KnownValue = 1
	Note      KnownValue = 4
	SSKRShare KnownValue = 6
	Name      KnownValue = 11
	Date      KnownValue = 16
	SeedType  KnownValue = 200
)

func (k KnownValue) String() string {
	switch k {
	case IsA:
		return "isA"
	case Note:
		return "note"
	case SSKRShare:
		return "sskrShare"
	case Name:
		return "name"
	case Date:
		return "date"
	case SeedType:
		return "Seed"
	default:
		return fmt.Sprintf("KnownValue(%d)", uint64(k))
	}
}

type kind int

const (
	kindLeaf kind = iota
	kindKnownValue
	kindWrapped
	kindNode
	kindAssertion
	kindEncrypted
	kindElided
)

// Digest is the SHA-256 digest that identifies an envelope.
type Digest [sha256.Size]byte

// Envelope is an immutable tree of a subject and its assertions. Every
// envelope carries a digest that survives encryption and elision.
type Envelope struct {
	kind   kind
	digest Digest

	leaf       cbor.RawMessage
	known      KnownValue
	inner      *Envelope
	subject    *Envelope
	assertions []*Envelope
	predicate  *Envelope
	object     *Envelope
	sealed     *encryptedMessage
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeUnixDynamic
	opts.TimeTag = cbor.EncTagRequired
	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

func digestOf(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// NewLeaf creates an envelope whose subject is v.
func NewLeaf(v any) (*Envelope, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope subject: %w", err)
	}
	return newLeaf(data), nil
}

func newLeaf(data []byte) *Envelope {
	return &Envelope{kind: kindLeaf, leaf: data, digest: digestOf(data)}
}

// NewKnownValue creates an envelope whose subject is the known value k.
func NewKnownValue(k KnownValue) *Envelope {
	tagged, err := encMode.Marshal(cbor.Tag{Number: TagKnownValue, Content: uint64(k)})
	if err != nil {
		panic(err)
	}
	return &Envelope{kind: kindKnownValue, known: k, digest: digestOf(tagged)}
}

func newAssertion(predicate, object *Envelope) *Envelope {
	return &Envelope{
		kind:      kindAssertion,
		predicate: predicate,
		object:    object,
		digest:    digestOf(predicate.digest[:], object.digest[:]),
	}
}

func newElided(d Digest) *Envelope {
	return &Envelope{kind: kindElided, digest: d}
}

// newNode sorts assertions by digest and drops duplicates.
func newNode(subject *Envelope, assertions []*Envelope) *Envelope {
	if len(assertions) == 0 {
		return subject
	}
	sorted := slices.Clone(assertions)
	slices.SortFunc(sorted, func(a, b *Envelope) int {
		return bytes.Compare(a.digest[:], b.digest[:])
	})
	sorted = slices.CompactFunc(sorted, func(a, b *Envelope) bool {
		return a.digest == b.digest
	})

	parts := [][]byte{subject.digest[:]}
	for _, a := range sorted {
		parts = append(parts, a.digest[:])
	}
	return &Envelope{kind: kindNode, subject: subject, assertions: sorted, digest: digestOf(parts...)}
}

// AddAssertion returns a copy of e with an extra assertion whose object is
// a leaf holding object.
func (e *Envelope) AddAssertion(predicate KnownValue, object any) (*Envelope, error) {
	obj, err := NewLeaf(object)
	if err != nil {
		return nil, fmt.Errorf("encoding %s object: %w", predicate, err)
	}
	return e.addAssertion(newAssertion(NewKnownValue(predicate), obj)), nil
}

// AddType asserts isA kind.
func (e *Envelope) AddType(kind KnownValue) *Envelope {
	return e.addAssertion(newAssertion(NewKnownValue(IsA), NewKnownValue(kind)))
}

func (e *Envelope) addAssertion(assertion *Envelope) *Envelope {
	if e.kind == kindNode {
		return newNode(e.subject, append(slices.Clone(e.assertions), assertion))
	}
	return newNode(e, []*Envelope{assertion})
}

// Subject returns the subject of a node, or e itself.
func (e *Envelope) Subject() *Envelope {
	if e.kind == kindNode {
		return e.subject
	}
	return e
}

func (e *Envelope) replaceSubject(subject *Envelope) *Envelope {
	if e.kind == kindNode {
		return newNode(subject, e.assertions)
	}
	return subject
}

// Digest identifies the envelope. Encrypting a subject preserves it.
func (e *Envelope) Digest() Digest {
	return e.digest
}

// Assertions returns the assertions with the given predicate.
func (e *Envelope) Assertions(predicate KnownValue) []*Envelope {
	if e.kind != kindNode {
		return nil
	}
	var out []*Envelope
	for _, a := range e.assertions {
		if a.kind == kindAssertion && a.predicate.kind == kindKnownValue && a.predicate.known == predicate {
			out = append(out, a)
		}
	}
	return out
}

// CheckType requires an isA assertion naming kind.
func (e *Envelope) CheckType(kind KnownValue) error {
	for _, a := range e.Assertions(IsA) {
		if a.object.kind == kindKnownValue && a.object.known == kind {
			return nil
		}
	}
	return fmt.Errorf("%w: envelope is not a %s", serrors.ErrMetadataTypeMismatch, kind)
}

// OptionalObject decodes the leaf object for predicate into v. It reports
// false when the predicate is absent and fails when it appears twice.
func (e *Envelope) OptionalObject(predicate KnownValue, v any) (bool, error) {
	matches := e.Assertions(predicate)
	switch len(matches) {
	case 0:
		return false, nil
	case 1:
		obj := matches[0].object
		if obj.kind != kindLeaf {
			return false, fmt.Errorf("%w: %s object is not a leaf", serrors.ErrMetadataTypeMismatch, predicate)
		}
		if err := decMode.Unmarshal(obj.leaf, v); err != nil {
			return false, fmt.Errorf("%w: %s object: %v", serrors.ErrMetadataTypeMismatch, predicate, err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: multiple %s assertions", serrors.ErrMetadataTypeMismatch, predicate)
	}
}

// ExtractSubject decodes a leaf subject into v.
func (e *Envelope) ExtractSubject(v any) error {
	subject := e.Subject()
	if subject.kind != kindLeaf {
		return fmt.Errorf("%w: envelope subject is not a leaf", serrors.ErrMetadataTypeMismatch)
	}
	if err := decMode.Unmarshal(subject.leaf, v); err != nil {
		return fmt.Errorf("%w: envelope subject: %v", serrors.ErrMetadataTypeMismatch, err)
	}
	return nil
}

// Wrap returns an envelope whose subject is e.
func (e *Envelope) Wrap() *Envelope {
	return &Envelope{kind: kindWrapped, inner: e, digest: digestOf(e.digest[:])}
}

// Unwrap returns the envelope wrapped in the subject.
func (e *Envelope) Unwrap() (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != kindWrapped {
		return nil, fmt.Errorf("%w: envelope subject is not wrapped", serrors.ErrMetadataTypeMismatch)
	}
	return subject.inner, nil
}

// IsSealed reports whether the subject is encrypted.
func (e *Envelope) IsSealed() bool {
	return e.Subject().kind == kindEncrypted
}

// UntaggedCBOR encodes the envelope without the outer envelope tag, as
// carried by ur:envelope.
func (e *Envelope) UntaggedCBOR() ([]byte, error) {
	switch e.kind {
	case kindLeaf:
		return encMode.Marshal(cbor.RawTag{Number: TagLeaf, Content: e.leaf})
	case kindKnownValue:
		return encMode.Marshal(uint64(e.known))
	case kindWrapped:
		inner, err := e.inner.UntaggedCBOR()
		if err != nil {
			return nil, err
		}
		return encMode.Marshal(cbor.RawTag{Number: TagEnvelope, Content: inner})
	case kindNode:
		items := make([]cbor.RawMessage, 0, len(e.assertions)+1)
		for _, part := range append([]*Envelope{e.subject}, e.assertions...) {
			item, err := part.UntaggedCBOR()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return encMode.Marshal(items)
	case kindAssertion:
		pred, err := e.predicate.UntaggedCBOR()
		if err != nil {
			return nil, err
		}
		obj, err := e.object.UntaggedCBOR()
		if err != nil {
			return nil, err
		}
		// A one-entry map has the single header byte 0xa1.
		return slices.Concat([]byte{0xa1}, pred, obj), nil
	case kindEncrypted:
		return e.sealed.marshal()
	case kindElided:
		return encMode.Marshal(e.digest[:])
	default:
		return nil, fmt.Errorf("unknown envelope case %d", e.kind)
	}
}

// MarshalCBOR encodes the envelope with tag 200.
func (e *Envelope) MarshalCBOR() ([]byte, error) {
	content, err := e.UntaggedCBOR()
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(cbor.RawTag{Number: TagEnvelope, Content: content})
}

// UnmarshalCBOR decodes an envelope tagged 200.
func (e *Envelope) UnmarshalCBOR(data []byte) error {
	var tag cbor.RawTag
	if err := decMode.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("%w: envelope: %v", serrors.ErrDecodeFailure, err)
	}
	if tag.Number != TagEnvelope {
		return fmt.Errorf("%w: expected envelope tag %d, got %d", serrors.ErrMetadataTypeMismatch, TagEnvelope, tag.Number)
	}
	decoded, err := decodeUntagged(tag.Content)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

func decodeUntagged(data []byte) (*Envelope, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty envelope", serrors.ErrDecodeFailure)
	}

	switch data[0] >> 5 {
	case 0:
		var k uint64
		if err := decMode.Unmarshal(data, &k); err != nil {
			return nil, fmt.Errorf("%w: known value: %v", serrors.ErrDecodeFailure, err)
		}
		return NewKnownValue(KnownValue(k)), nil

	case 2:
		var d []byte
		if err := decMode.Unmarshal(data, &d); err != nil || len(d) != sha256.Size {
			return nil, fmt.Errorf("%w: elided envelope must be a %d-byte digest", serrors.ErrDecodeFailure, sha256.Size)
		}
		return newElided(Digest(d)), nil

	case 4:
		var items []cbor.RawMessage
		if err := decMode.Unmarshal(data, &items); err != nil || len(items) < 2 {
			return nil, fmt.Errorf("%w: node must hold a subject and at least one assertion", serrors.ErrDecodeFailure)
		}
		subject, err := decodeUntagged(items[0])
		if err != nil {
			return nil, err
		}
		assertions := make([]*Envelope, 0, len(items)-1)
		for _, item := range items[1:] {
			a, err := decodeUntagged(item)
			if err != nil {
				return nil, err
			}
			if a.kind != kindAssertion && a.kind != kindElided && a.kind != kindEncrypted {
				return nil, fmt.Errorf("%w: node element is not an assertion", serrors.ErrDecodeFailure)
			}
			assertions = append(assertions, a)
		}
		return newNode(subject, assertions), nil

	case 5:
		if data[0] != 0xa1 {
			return nil, fmt.Errorf("%w: assertion must be a single-entry map", serrors.ErrDecodeFailure)
		}
		var pred, obj cbor.RawMessage
		rest, err := decMode.UnmarshalFirst(data[1:], &pred)
		if err != nil {
			return nil, fmt.Errorf("%w: assertion predicate: %v", serrors.ErrDecodeFailure, err)
		}
		if rest, err = decMode.UnmarshalFirst(rest, &obj); err != nil || len(rest) != 0 {
			return nil, fmt.Errorf("%w: assertion object", serrors.ErrDecodeFailure)
		}
		p, err := decodeUntagged(pred)
		if err != nil {
			return nil, err
		}
		o, err := decodeUntagged(obj)
		if err != nil {
			return nil, err
		}
		return newAssertion(p, o), nil

	case 6:
		var tag cbor.RawTag
		if err := decMode.Unmarshal(data, &tag); err != nil {
			return nil, fmt.Errorf("%w: envelope: %v", serrors.ErrDecodeFailure, err)
		}
		switch tag.Number {
		case TagLeaf:
			return newLeaf(slices.Clone(tag.Content)), nil
		case TagEnvelope:
			inner, err := decodeUntagged(tag.Content)
			if err != nil {
				return nil, err
			}
			return inner.Wrap(), nil
		case TagEncrypted:
			msg, err := unmarshalEncrypted(tag.Content)
			if err != nil {
				return nil, err
			}
			d, err := msg.digest()
			if err != nil {
				return nil, err
			}
			return &Envelope{kind: kindEncrypted, sealed: msg, digest: d}, nil
		default:
			return nil, fmt.Errorf("%w: unknown envelope tag %d", serrors.ErrDecodeFailure, tag.Number)
		}

	default:
		return nil, fmt.Errorf("%w: unexpected envelope item 0x%02x", serrors.ErrDecodeFailure, data[0])
	}
}

// UR wraps the envelope as ur:envelope.
func (e *Envelope) UR() (*ur.UR, error) {
	data, err := e.UntaggedCBOR()
	if err != nil {
		return nil, err
	}
	return ur.New(URType, data)
}

// URString renders the envelope as a single-part ur:envelope string.
func (e *Envelope) URString() (string, error) {
	u, err := e.UR()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// FromUR decodes a ur:envelope.
func FromUR(u *ur.UR) (*Envelope, error) {
	if u.Type != URType {
		return nil, fmt.Errorf("%w: expected ur:%s, got ur:%s", serrors.ErrMetadataTypeMismatch, URType, u.Type)
	}
	return decodeUntagged(u.CBOR)
}

// ParseURString decodes a single-part ur:envelope string.
func ParseURString(text string) (*Envelope, error) {
	u, err := ur.ParseTyped(text, URType)
	if err != nil {
		return nil, err
	}
	return FromUR(u)
}
