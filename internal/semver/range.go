package semver

import (
	"fmt"
	"strings"
)

// RangeKind discriminates the shapes a version constraint can take.
type RangeKind int

const (
	// Latest accepts any version.
	Latest RangeKind = iota
	// Minimum accepts the lower bound and anything above it.
	Minimum
	// Specific accepts exactly one version.
	Specific
	// Between accepts versions between a lower and an upper bound.
	Between
)

// Range is an immutable version constraint. Lower is meaningful for
// Minimum, Specific, and Between; Upper only for Between. The inclusivity
// flags are honored by Matches but deliberately not reflected by String:
// the lock format always renders ">= lower, < upper".
type Range struct {
	Kind         RangeKind
	Lower        Version
	Upper        Version
	IncludeLower bool
	IncludeUpper bool
}

// Any returns the range accepting every version.
func Any() Range { return Range{Kind: Latest} }

// AtLeast returns the range accepting v and anything above it.
func AtLeast(v Version) Range { return Range{Kind: Minimum, Lower: v} }

// Exactly returns the range accepting only v.
func Exactly(v Version) Range { return Range{Kind: Specific, Lower: v} }

// InBetween returns the range between lo and hi with the given bound
// inclusivity.
func InBetween(includeLower bool, lo, hi Version, includeUpper bool) Range {
	return Range{
		Kind:         Between,
		Lower:        lo,
		Upper:        hi,
		IncludeLower: includeLower,
		IncludeUpper: includeUpper,
	}
}

// String renders the range in lock-file notation.
func (r Range) String() string {
	switch r.Kind {
	case Minimum:
		return ">= " + r.Lower.String()
	case Specific:
		return r.Lower.String()
	case Between:
		return ">= " + r.Lower.String() + ", < " + r.Upper.String()
	default:
		return ">= 0"
	}
}

// Matches reports whether v satisfies the range.
func (r Range) Matches(v Version) bool {
	switch r.Kind {
	case Minimum:
		return v.Compare(r.Lower) >= 0
	case Specific:
		return v.Compare(r.Lower) == 0
	case Between:
		lo := v.Compare(r.Lower)
		if r.IncludeLower {
			if lo < 0 {
				return false
			}
		} else if lo <= 0 {
			return false
		}
		hi := v.Compare(r.Upper)
		if r.IncludeUpper {
			return hi <= 0
		}
		return hi < 0
	default:
		return true
	}
}

// ParseRange parses a constraint as written in nupin.yaml. Supported forms:
//
//	""                  any version
//	"1.2.3", "= 1.2.3"  exactly that version
//	">= 1.2"            that version or higher
//	">= 1.0 < 2.0"      at least the first, below the second
func ParseRange(s string) (Range, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return Any(), nil
	case 1:
		v, err := Parse(fields[0])
		if err != nil {
			return Range{}, fmt.Errorf("constraint %q: %w", s, err)
		}
		return Exactly(v), nil
	case 2:
		v, err := Parse(fields[1])
		if err != nil {
			return Range{}, fmt.Errorf("constraint %q: %w", s, err)
		}
		switch fields[0] {
		case "=":
			return Exactly(v), nil
		case ">=":
			return AtLeast(v), nil
		}
	case 4:
		if fields[0] == ">=" && fields[2] == "<" {
			lo, err := Parse(fields[1])
			if err != nil {
				return Range{}, fmt.Errorf("constraint %q: %w", s, err)
			}
			hi, err := Parse(fields[3])
			if err != nil {
				return Range{}, fmt.Errorf("constraint %q: %w", s, err)
			}
			return InBetween(true, lo, hi, false), nil
		}
	}
	return Range{}, fmt.Errorf("unsupported constraint %q", s)
}
