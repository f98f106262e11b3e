package sskr

import (
	"fmt"
	"strconv"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// GroupSpec is an M-of-N member policy for one group.
type GroupSpec struct {
	Threshold int
	Count     int
}

// ParseGroupSpec reads "M-of-N".
func ParseGroupSpec(s string) (GroupSpec, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "-")
	if len(parts) != 3 || parts[1] != "of" {
		return GroupSpec{}, fmt.Errorf("%w: %q is not of the form M-of-N", serrors.ErrInvalidGroupSpec, s)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return GroupSpec{}, fmt.Errorf("%w: invalid threshold in %q", serrors.ErrInvalidGroupSpec, s)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return GroupSpec{}, fmt.Errorf("%w: invalid count in %q", serrors.ErrInvalidGroupSpec, s)
	}

	g := GroupSpec{Threshold: m, Count: n}
	return g, g.Validate()
}

func (g GroupSpec) Validate() error {
	if g.Count < 1 || g.Count > MaxShareCount {
		return fmt.Errorf("%w: member count %d must be 1-%d", serrors.ErrInvalidGroupSpec, g.Count, MaxShareCount)
	}
	if g.Threshold < 1 || g.Threshold > g.Count {
		return fmt.Errorf("%w: member threshold %d must be 1-%d", serrors.ErrInvalidGroupSpec, g.Threshold, g.Count)
	}
	return nil
}

func (g GroupSpec) String() string {
	return fmt.Sprintf("%d-of-%d", g.Threshold, g.Count)
}

// Spec is a group threshold over a list of groups.
type Spec struct {
	GroupThreshold int
	Groups         []GroupSpec
}

func NewSpec(groupThreshold int, groups []GroupSpec) (Spec, error) {
	s := Spec{GroupThreshold: groupThreshold, Groups: groups}
	return s, s.Validate()
}

func (s Spec) Validate() error {
	if len(s.Groups) < 1 || len(s.Groups) > MaxShareCount {
		return fmt.Errorf("%w: group count %d must be 1-%d", serrors.ErrInvalidGroupSpec, len(s.Groups), MaxShareCount)
	}
	if s.GroupThreshold < 1 || s.GroupThreshold > len(s.Groups) {
		return fmt.Errorf("%w: group threshold %d must be 1-%d", serrors.ErrInvalidGroupSpec, s.GroupThreshold, len(s.Groups))
	}
	for _, g := range s.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Spec) String() string {
	groups := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		groups[i] = g.String()
	}
	return fmt.Sprintf("%d of [%s]", s.GroupThreshold, strings.Join(groups, ", "))
}
