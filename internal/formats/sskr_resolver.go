package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	"github.com/PolarWolf314/seedtool/internal/envelope"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/sskr"
	"github.com/PolarWolf314/seedtool/internal/ur"
)

// shareStrategy recovers a seed from the whole input text using one share
// encoding. Strategies share no state.
type shareStrategy struct {
	name    string
	resolve func(text string) (*seed.Seed, error)
}

// shareStrategies are tried in order; the first success wins.
var shareStrategies = []shareStrategy{
	{"envelope", resolveEnvelopeShares},
	{"btw", func(text string) (*seed.Seed, error) { return resolveBytewordsShares(text, bytewords.Standard) }},
	{"btwm", func(text string) (*seed.Seed, error) { return resolveBytewordsShares(text, bytewords.Minimal) }},
	{"btwu", func(text string) (*seed.Seed, error) { return resolveBytewordsShares(text, bytewords.URI) }},
	{"ur:sskr", func(text string) (*seed.Seed, error) { return resolveURShares(text, urTypeSSKR, tagForbidden) }},
	{"ur:crypto-sskr", func(text string) (*seed.Seed, error) { return resolveURShares(text, urTypeSSKRLegacy, tagOptional) }},
}

// ResolveSSKR recovers a seed from an unordered bag of SSKR shares in any
// supported encoding. Tokens that do not decode are dropped; extra shares
// and groups below their threshold are ignored.
func ResolveSSKR(text string) (*seed.Seed, error) {
	var failures []string
	for _, strategy := range shareStrategies {
		s, err := strategy.resolve(text)
		if err == nil {
			return s, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %v", strategy.name, err))
	}
	return nil, fmt.Errorf("%w (%s)", serrors.ErrInsufficientOrInvalidShares, strings.Join(failures, "; "))
}

// ShareStrategyNames lists the strategies in the order they are tried.
func ShareStrategyNames() []string {
	names := make([]string, len(shareStrategies))
	for i, s := range shareStrategies {
		names[i] = s.name
	}
	return names
}

var errNoShares = errors.New("no decodable shares")

func resolveEnvelopeShares(text string) (*seed.Seed, error) {
	var envelopes []*envelope.Envelope
	for _, token := range strings.Fields(text) {
		if e, err := envelope.ParseURString(token); err == nil {
			envelopes = append(envelopes, e)
		}
	}
	if len(envelopes) == 0 {
		return nil, errNoShares
	}

	joined, err := envelope.SSKRJoin(envelopes)
	if err != nil {
		return nil, err
	}
	inner, err := joined.Unwrap()
	if err != nil {
		return nil, err
	}
	return seed.FromEnvelope(inner)
}

func resolveBytewordsShares(text string, style bytewords.Style) (*seed.Seed, error) {
	// Standard bytewords contain spaces, so only newlines separate shares.
	var tokens []string
	if style == bytewords.Standard {
		tokens = strings.Split(text, "\n")
	} else {
		tokens = strings.Fields(text)
	}

	var shares [][]byte
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		payload, err := bytewords.Decode(token, style)
		if err != nil {
			continue
		}
		if share, ok := untagShare(payload, tagSSKRShare, tagRequired); ok {
			shares = append(shares, share)
		}
	}
	return combineShares(shares)
}

func resolveURShares(text, urType string, policy tagPolicy) (*seed.Seed, error) {
	var urs []*ur.UR
	for _, token := range strings.Fields(text) {
		if u, err := ur.Parse(token); err == nil {
			urs = append(urs, u)
		}
	}

	var shares [][]byte
	for _, u := range urs {
		if u.Type != urType {
			return nil, fmt.Errorf("%w: expected ur:%s, got ur:%s", serrors.ErrMetadataTypeMismatch, urType, u.Type)
		}
		if share, ok := untagShare(u.CBOR, tagSSKRShareLegacy, policy); ok {
			shares = append(shares, share)
		}
	}
	return combineShares(shares)
}

type tagPolicy int

const (
	tagRequired tagPolicy = iota
	tagForbidden
	tagOptional
)

// untagShare extracts the share byte string from a CBOR payload, stripping
// tag according to policy.
func untagShare(payload []byte, tag uint64, policy tagPolicy) ([]byte, bool) {
	content := payload
	isTagged := len(payload) > 0 && payload[0]>>5 == 6

	switch {
	case isTagged && policy == tagForbidden, !isTagged && policy == tagRequired:
		return nil, false
	case isTagged:
		var raw cbor.RawTag
		if err := cbor.Unmarshal(payload, &raw); err != nil || raw.Number != tag {
			return nil, false
		}
		content = raw.Content
	}

	var share []byte
	if err := cbor.Unmarshal(content, &share); err != nil {
		return nil, false
	}
	return share, true
}

func combineShares(raw [][]byte) (*seed.Seed, error) {
	var shares []sskr.Share
	for _, r := range raw {
		if s, err := sskr.ParseShare(r); err == nil {
			shares = append(shares, s)
		}
	}
	if len(shares) == 0 {
		return nil, errNoShares
	}

	secret, err := sskr.Combine(shares)
	if err != nil {
		return nil, err
	}
	return seed.New(secret)
}
