package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/PolarWolf314/seedtool/internal/formats"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

// formatValue is a pflag.Value selecting one format from the registry.
type formatValue struct {
	key   *formats.Key
	allow func(formats.Key) error
}

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(key *formats.Key, def formats.Key, allow func(formats.Key) error) *formatValue {
	*key = def
	return &formatValue{key: key, allow: allow}
}

func (v *formatValue) String() string { return v.key.String() }

func (v *formatValue) Set(s string) error {
	k, err := formats.ParseKey(s)
	if err != nil {
		return err
	}
	if v.allow != nil {
		if err := v.allow(k); err != nil {
			return err
		}
	}
	*v.key = k
	return nil
}

func (v *formatValue) Type() string { return "format" }

func inputFormat(k formats.Key) error {
	_, err := formats.SelectDecoder(k)
	return err
}

func outputFormat(k formats.Key) error {
	_, err := formats.SelectEncoder(k)
	return err
}

// sskrFormatValue is a pflag.Value for the SSKR share sub-encoding.
type sskrFormatValue struct {
	format *formats.SSKRFormat
}

func (v *sskrFormatValue) String() string { return v.format.String() }

func (v *sskrFormatValue) Set(s string) error {
	f, err := formats.ParseSSKRFormat(s)
	if err != nil {
		return err
	}
	*v.format = f
	return nil
}

func (v *sskrFormatValue) Type() string { return "sskr-format" }

// groupsValue collects M-of-N group specs. The first Set replaces the
// default; later ones append. Each value may hold several comma or space
// separated specs.
type groupsValue struct {
	groups  *[]sskr.GroupSpec
	changed bool
}

func newGroupsValue(groups *[]sskr.GroupSpec, def []sskr.GroupSpec) *groupsValue {
	*groups = def
	return &groupsValue{groups: groups}
}

func (v *groupsValue) String() string {
	specs := make([]string, len(*v.groups))
	for i, g := range *v.groups {
		specs[i] = g.String()
	}
	return "[" + strings.Join(specs, ",") + "]"
}

func (v *groupsValue) Set(s string) error {
	var parsed []sskr.GroupSpec
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		g, err := sskr.ParseGroupSpec(field)
		if err != nil {
			return err
		}
		parsed = append(parsed, g)
	}
	if len(parsed) == 0 {
		return fmt.Errorf("empty group spec")
	}

	if !v.changed {
		*v.groups = nil
		v.changed = true
	}
	*v.groups = append(*v.groups, parsed...)
	return nil
}

func (v *groupsValue) Type() string { return "M-of-N" }

// dateValue parses "now", an RFC 3339 date-time or a bare date. Times are
// kept in UTC to whole seconds.
type dateValue struct {
	date **time.Time
	now  func() time.Time
}

func (v *dateValue) String() string {
	if *v.date == nil {
		return ""
	}
	return (*v.date).Format(time.RFC3339)
}

func (v *dateValue) Set(s string) error {
	t, err := parseDate(s, v.now)
	if err != nil {
		return err
	}
	*v.date = &t
	return nil
}

func (v *dateValue) Type() string { return "date" }

func parseDate(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "now") {
		return now().UTC().Truncate(time.Second), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected \"now\", YYYY-MM-DD or an RFC 3339 date-time)", s)
}
