// Package sskr implements Sharded Secret Key Reconstruction.
//
// A secret is split twice with Shamir's scheme over GF(256): first into
// one share per group under the group threshold, then each group share
// into member shares under that group's member threshold. Recovery needs
// at least the group threshold of groups, each with at least its member
// threshold of shares.
//
// Every split also stores a digest share at x=254 whose first four bytes
// are an HMAC-SHA256 of the secret, so recovery can detect mismatched or
// corrupted shares. The secret itself sits at x=255.
//
// # Wire format
//
// A share is 5 metadata bytes followed by the share value:
//
//	byte 0-1  identifier (big-endian)
//	byte 2    (group threshold - 1) << 4 | (group count - 1)
//	byte 3    group index << 4 | (member threshold - 1)
//	byte 4    reserved (0) << 4 | member index
//
// # Usage
//
//	spec, _ := sskr.NewSpec(2, []sskr.GroupSpec{{2, 3}, {3, 5}})
//	groups, _ := sskr.Generate(spec, secret, rand.Reader)
//	secret, _ := sskr.Combine(shares)
package sskr
