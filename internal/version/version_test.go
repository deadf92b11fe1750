package version

import "testing"

func TestGetDefaults(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "", "", ""

	info := Get()
	if info.Version != "dev" || info.Commit != "dev" || info.BuildDate != "dev" {
		t.Fatalf("expected dev defaults, got %+v", info)
	}
}

func TestGetUsesOverrides(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc123", "2026-08-01"

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc123" || info.BuildDate != "2026-08-01" {
		t.Fatalf("unexpected overrides: %+v", info)
	}
	if got := info.String(); got != "v1.2.3 (abc123, 2026-08-01)" {
		t.Fatalf("unexpected string form: %s", got)
	}
}
