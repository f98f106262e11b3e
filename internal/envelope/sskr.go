package envelope

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

// TagSSKRShare marks a serialized SSKR share.
const TagSSKRShare = 40309

// SSKRSplit splits contentKey by spec and returns one envelope per share,
// flattened in group order. e must have a sealed subject.
func SSKRSplit(e *Envelope, spec sskr.Spec, contentKey []byte, random io.Reader) ([]*Envelope, error) {
	if !e.IsSealed() {
		return nil, fmt.Errorf("%w: only envelopes with an encrypted subject can be split", serrors.ErrMetadataTypeMismatch)
	}

	groups, err := sskr.Generate(spec, contentKey, random)
	if err != nil {
		return nil, err
	}

	var out []*Envelope
	for _, group := range groups {
		for _, share := range group {
			shareEnv, err := e.AddAssertion(SSKRShare, cbor.Tag{Number: TagSSKRShare, Content: share.Bytes()})
			if err != nil {
				return nil, err
			}
			out = append(out, shareEnv)
		}
	}
	return out, nil
}

// SSKRJoin recovers the decrypted subject from share envelopes. Envelopes
// are grouped by subject digest and the first group that combines wins.
// The share assertions are not part of the result.
func SSKRJoin(envelopes []*Envelope) (*Envelope, error) {
	type bucket struct {
		first  *Envelope
		shares []sskr.Share
	}
	var order []Digest
	buckets := make(map[Digest]*bucket)

	for _, env := range envelopes {
		if !env.IsSealed() {
			continue
		}
		digest := env.Subject().Digest()
		for _, a := range env.Assertions(SSKRShare) {
			share, ok := decodeShareObject(a.object)
			if !ok {
				continue
			}
			b := buckets[digest]
			if b == nil {
				b = &bucket{first: env}
				buckets[digest] = b
				order = append(order, digest)
			}
			b.shares = append(b.shares, share)
		}
	}

	for _, digest := range order {
		b := buckets[digest]
		key, err := sskr.Combine(b.shares)
		if err != nil {
			continue
		}
		opened, err := b.first.DecryptSubject(key)
		if err != nil {
			continue
		}
		return opened.Subject(), nil
	}
	return nil, fmt.Errorf("%w: no share envelopes could be joined", serrors.ErrInsufficientOrInvalidShares)
}

func decodeShareObject(object *Envelope) (sskr.Share, bool) {
	if object.kind != kindLeaf {
		return sskr.Share{}, false
	}
	var tag cbor.RawTag
	if err := decMode.Unmarshal(object.leaf, &tag); err != nil || tag.Number != TagSSKRShare {
		return sskr.Share{}, false
	}
	var raw []byte
	if err := decMode.Unmarshal(tag.Content, &raw); err != nil {
		return sskr.Share{}, false
	}
	share, err := sskr.ParseShare(raw)
	if err != nil {
		return sskr.Share{}, false
	}
	return share, true
}
