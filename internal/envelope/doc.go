// Package envelope implements the subset of Gordian Envelope that seeds
// and their SSKR shares need: leaves, known values, wrapping, assertions,
// subject encryption and elided digests.
//
// # Structure
//
//	envelope  = #6.200(untagged)
//	untagged  = #6.201(any)                 ; leaf
//	          / uint                         ; known value
//	          / #6.200(untagged)             ; wrapped envelope
//	          / [untagged, + untagged]       ; node: subject, assertions
//	          / {untagged => untagged}       ; assertion
//	          / #6.40002([bstr, bstr, bstr, ? bstr]) ; encrypted subject
//	          / bstr .size 32                ; elided
//
// A ur:envelope carries the untagged form.
//
// # Digests
//
// A leaf digest is the SHA-256 of its CBOR value, a known value digest is
// the SHA-256 of the value tagged 40000. Wrapped, assertion and node
// digests hash the concatenated digests of their parts, with node
// assertions sorted by digest. Encryption and elision keep the digest.
//
// # Encryption
//
// Subjects are sealed with IETF ChaCha20-Poly1305 under a 32-byte key and
// a 12-byte nonce. The plaintext is the tagged subject and the additional
// data is its digest tagged 40001.
//
// # SSKR
//
// SSKRSplit splits the content key of an envelope whose subject is sealed
// and returns one copy of the envelope per share, each carrying an
// sskrShare assertion. SSKRJoin groups share envelopes by subject digest,
// recovers the content key from the first group that satisfies its
// thresholds, and decrypts the subject.
package envelope
