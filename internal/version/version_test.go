package version

import (
	"testing"

	"github.com/fatih/color"
)

func withValues(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate, origNoColor := Version, GitCommit, BuildDate, color.NoColor
	Version, GitCommit, BuildDate = version, commit, date
	color.NoColor = true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate, color.NoColor = origVersion, origCommit, origDate, origNoColor
	})
}

func TestColoredWithoutColor(t *testing.T) {
	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "nightly"} {
		withValues(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestColoredWithColor(t *testing.T) {
	withValues(t, "1.2.3-rc.1", "", "")
	color.NoColor = false
	got := Colored()
	if got == "1.2.3-rc.1" {
		t.Fatalf("Colored() = %q, want escape sequences", got)
	}
	want := versionMajorColor.Sprint("1") + "." + versionMinorColor.Sprint("2") + "." + versionPatchColor.Sprint("3") + "-rc.1"
	if got != want {
		t.Errorf("Colored() = %q, want %q", got, want)
	}
}

func TestDetails(t *testing.T) {
	withValues(t, "1.2.3", "abc123", "2024-01-15T10:30:00Z")
	want := "jcm 1.2.3\ncommit: abc123\nbuilt:  2024-01-15T10:30:00Z"
	if got := Details(); got != want {
		t.Errorf("Details() = %q, want %q", got, want)
	}

	withValues(t, "1.2.3", "", "")
	if got := Details(); got != "jcm 1.2.3" {
		t.Errorf("Details() = %q", got)
	}
}
