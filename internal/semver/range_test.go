package semver

import (
	"testing"
)

func TestRangeString(t *testing.T) {
	if got := AtLeast(MustParse("1.2.0")).String(); got != ">= 1.2.0" {
		t.Errorf("Minimum = %q, want %q", got, ">= 1.2.0")
	}
	if got := Exactly(MustParse("1.2.0")).String(); got != "1.2.0" {
		t.Errorf("Specific = %q, want %q", got, "1.2.0")
	}
	if got := Any().String(); got != ">= 0" {
		t.Errorf("Latest = %q, want %q", got, ">= 0")
	}
	r := InBetween(true, MustParse("1.0.0"), MustParse("2.0.0"), false)
	if got := r.String(); got != ">= 1.0.0, < 2.0.0" {
		t.Errorf("Between = %q, want %q", got, ">= 1.0.0, < 2.0.0")
	}
}

// The bound inclusivity flags never change the rendered operators.
func TestRangeString_ignoresInclusivity(t *testing.T) {
	r := InBetween(false, MustParse("1.0.0"), MustParse("2.0.0"), true)
	if got := r.String(); got != ">= 1.0.0, < 2.0.0" {
		t.Errorf("Between = %q, want %q", got, ">= 1.0.0, < 2.0.0")
	}
}

func TestMatches(t *testing.T) {
	v := MustParse("1.5.0")

	if !Any().Matches(v) {
		t.Error("Latest should match everything")
	}
	if !AtLeast(MustParse("1.5.0")).Matches(v) {
		t.Error("Minimum should include its lower bound")
	}
	if AtLeast(MustParse("1.6.0")).Matches(v) {
		t.Error("Minimum should reject lower versions")
	}
	if !Exactly(MustParse("1.5.0")).Matches(v) {
		t.Error("Specific should match its own version")
	}
	if Exactly(MustParse("1.5.1")).Matches(v) {
		t.Error("Specific should reject other versions")
	}

	between := InBetween(true, MustParse("1.0.0"), MustParse("2.0.0"), false)
	if !between.Matches(v) {
		t.Error("Between should match versions inside the bounds")
	}
	if between.Matches(MustParse("2.0.0")) {
		t.Error("exclusive upper bound should reject the bound itself")
	}
	if !between.Matches(MustParse("1.0.0")) {
		t.Error("inclusive lower bound should accept the bound itself")
	}

	exclusive := InBetween(false, MustParse("1.0.0"), MustParse("2.0.0"), true)
	if exclusive.Matches(MustParse("1.0.0")) {
		t.Error("exclusive lower bound should reject the bound itself")
	}
	if !exclusive.Matches(MustParse("2.0.0")) {
		t.Error("inclusive upper bound should accept the bound itself")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("")
	if err != nil || r.Kind != Latest {
		t.Errorf("empty constraint = %v (%v), want Latest", r, err)
	}

	r, err = ParseRange("= 1.2.3")
	if err != nil || r.Kind != Specific || r.Lower.String() != "1.2.3" {
		t.Errorf("= 1.2.3 parsed to %v (%v)", r, err)
	}

	r, err = ParseRange("13.0.1")
	if err != nil || r.Kind != Specific {
		t.Errorf("bare version parsed to %v (%v), want Specific", r, err)
	}

	r, err = ParseRange(">= 1.2")
	if err != nil || r.Kind != Minimum || r.Lower.String() != "1.2" {
		t.Errorf(">= 1.2 parsed to %v (%v)", r, err)
	}

	r, err = ParseRange(">= 1.0 < 2.0")
	if err != nil || r.Kind != Between || !r.IncludeLower || r.IncludeUpper {
		t.Errorf(">= 1.0 < 2.0 parsed to %v (%v)", r, err)
	}

	for _, bad := range []string{"~> 1.0", "> 1.0", ">= x", ">= 1.0 <= 2.0"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) should fail", bad)
		}
	}
}
