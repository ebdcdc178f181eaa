package version

import (
	"strings"
	"testing"
)

func TestPrettyKeepsComponentsAndSuffix(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "1.2.3-rc1"

	got := Pretty()
	for _, part := range []string{"1", "2", "3"} {
		if !strings.Contains(got, part) {
			t.Errorf("Pretty() = %q, missing component %q", got, part)
		}
	}
	if !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Pretty() = %q, want -rc1 suffix", got)
	}
}

func TestPrettyNonSemverUnchanged(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "nightly"

	if got := Pretty(); got != "nightly" {
		t.Errorf("Pretty() = %q, want nightly", got)
	}
}
