package sskr

import (
	"fmt"
	"io"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// Generate splits secret according to spec. The result holds one slice of
// member shares per group, in group order.
func Generate(spec Spec, secret []byte, random io.Reader) ([][]Share, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := validateSecret(secret); err != nil {
		return nil, err
	}

	var id [2]byte
	if _, err := io.ReadFull(random, id[:]); err != nil {
		return nil, fmt.Errorf("reading share identifier: %w", err)
	}
	identifier := uint16(id[0])<<8 | uint16(id[1])

	groupSecrets, err := splitSecret(spec.GroupThreshold, len(spec.Groups), secret, random)
	if err != nil {
		return nil, err
	}

	groups := make([][]Share, len(spec.Groups))
	for gi, group := range spec.Groups {
		memberSecrets, err := splitSecret(group.Threshold, group.Count, groupSecrets[gi], random)
		if err != nil {
			return nil, err
		}
		wipeBytes(groupSecrets[gi])

		groups[gi] = make([]Share, len(memberSecrets))
		for mi, value := range memberSecrets {
			groups[gi][mi] = Share{
				Identifier:      identifier,
				GroupIndex:      gi,
				GroupThreshold:  spec.GroupThreshold,
				GroupCount:      len(spec.Groups),
				MemberIndex:     mi,
				MemberThreshold: group.Threshold,
				Value:           value,
			}
		}
	}
	return groups, nil
}

type memberGroup struct {
	index     int
	threshold int
	indexes   []byte
	values    [][]byte
}

// Combine recovers the secret from shares. Shares beyond each group's
// member threshold are ignored, as are groups that cannot meet their own
// threshold, so any superset of a valid quorum recovers in any order.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares", serrors.ErrInsufficientOrInvalidShares)
	}

	first := shares[0]
	var groups []*memberGroup

	for _, share := range shares {
		if share.Identifier != first.Identifier ||
			share.GroupThreshold != first.GroupThreshold ||
			share.GroupCount != first.GroupCount ||
			len(share.Value) != len(first.Value) {
			return nil, fmt.Errorf("%w: shares belong to different sets", serrors.ErrInsufficientOrInvalidShares)
		}

		var group *memberGroup
		for _, g := range groups {
			if g.index == share.GroupIndex {
				group = g
				break
			}
		}
		if group == nil {
			group = &memberGroup{index: share.GroupIndex, threshold: share.MemberThreshold}
			groups = append(groups, group)
		} else {
			if share.MemberThreshold != group.threshold {
				return nil, fmt.Errorf("%w: member threshold mismatch in group %d", serrors.ErrInsufficientOrInvalidShares, share.GroupIndex)
			}
			for _, mi := range group.indexes {
				if int(mi) == share.MemberIndex {
					return nil, fmt.Errorf("%w: duplicate member %d in group %d", serrors.ErrInsufficientOrInvalidShares, mi, share.GroupIndex)
				}
			}
		}

		if len(group.indexes) < group.threshold {
			group.indexes = append(group.indexes, byte(share.MemberIndex))
			group.values = append(group.values, share.Value)
		}
	}

	if len(groups) < first.GroupThreshold {
		return nil, fmt.Errorf("%w: need %d groups, got %d", serrors.ErrInsufficientOrInvalidShares, first.GroupThreshold, len(groups))
	}

	var masterIndexes []byte
	var masterShares [][]byte
	for _, g := range groups {
		if len(g.indexes) < g.threshold {
			continue
		}
		groupSecret, err := recoverSecret(g.indexes, g.values)
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %v", serrors.ErrInsufficientOrInvalidShares, g.index, err)
		}
		masterIndexes = append(masterIndexes, byte(g.index))
		masterShares = append(masterShares, groupSecret)
		if len(masterIndexes) == first.GroupThreshold {
			break
		}
	}

	if len(masterIndexes) < first.GroupThreshold {
		return nil, fmt.Errorf("%w: only %d of %d groups meet their threshold",
			serrors.ErrInsufficientOrInvalidShares, len(masterIndexes), first.GroupThreshold)
	}

	secret, err := recoverSecret(masterIndexes, masterShares)
	for _, s := range masterShares {
		wipeBytes(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrInsufficientOrInvalidShares, err)
	}
	return secret, nil
}
