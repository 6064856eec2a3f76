package launchpad

import "testing"

func TestStatic_IsValidDistribution(t *testing.T) {
	c := NewStatic()
	cases := []struct {
		suite string
		want  bool
	}{
		{"jammy", true},
		{"noble", true},
		{"jammy-proposed", true},
		{"jammy-security", true},
		{"jammy-backports", true},
		{"invalid-dist", false},
		{"jammy-invalid", false},
		{"warty", false},
		{"", false},
	}
	for _, c2 := range cases {
		if got := c.IsValidDistribution(c2.suite); got != c2.want {
			t.Errorf("IsValidDistribution(%q) = %v, want %v", c2.suite, got, c2.want)
		}
	}
}

func TestStatic_BugTargeted(t *testing.T) {
	c := NewStatic()
	c.TargetedBugs[123456] = []string{"hello/jammy"}

	if ok, _ := c.BugTargeted(123456, "hello", "jammy"); !ok {
		t.Error("expected targeted bug")
	}
	// Pocket suffixes resolve to the base series.
	if ok, _ := c.BugTargeted(123456, "hello", "jammy-proposed"); !ok {
		t.Error("expected pocket suffix to resolve to base series")
	}
	if ok, _ := c.BugTargeted(123456, "hello", "noble"); ok {
		t.Error("wrong series must not match")
	}
	if ok, _ := c.BugTargeted(999999, "hello", "jammy"); ok {
		t.Error("unknown bug must answer negatively")
	}
}

func TestStatic_PublishedAndQueue(t *testing.T) {
	c := NewStatic()
	c.Published["hello/jammy"] = []string{"2.10-1", "2.10-2"}
	c.Queues["hello/jammy-proposed"] = []QueueItem{
		{Package: "hello", Version: "2.10-3", Suite: "jammy-proposed", Status: "Unapproved"},
	}

	versions, err := c.PublishedVersions("hello", "jammy-proposed")
	if err != nil || len(versions) != 2 {
		t.Errorf("PublishedVersions = %v, %v", versions, err)
	}

	entries, err := c.UploadQueue("hello", "jammy-proposed")
	if err != nil || len(entries) != 1 {
		t.Fatalf("UploadQueue = %v, %v", entries, err)
	}
	if !ReviewStates[entries[0].Status] {
		t.Errorf("expected %q to be a review state", entries[0].Status)
	}

	if v, _ := c.PublishedVersions("other", "jammy"); v != nil {
		t.Errorf("unseeded lookup must be empty, got %v", v)
	}
}
