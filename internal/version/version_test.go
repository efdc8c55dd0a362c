package version

import "testing"

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "v1.2.0", "", ""
	if got := String(); got != "docsite v1.2.0" {
		t.Errorf("String() = %q", got)
	}

	GitCommit, BuildTime = "abc123", "2026-01-02"
	if got := String(); got != "docsite v1.2.0 (abc123, built 2026-01-02)" {
		t.Errorf("String() = %q", got)
	}
}
