package debian

import "testing"

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in       string
		epoch    int
		upstream string
		revision string
	}{
		{"1.0-1", 0, "1.0", "1"},
		{"1.0-1ubuntu1", 0, "1.0", "1ubuntu1"},
		{"2:1.0-1", 2, "1.0", "1"},
		{"1.0", 0, "1.0", ""},
		{"1:1.2.3-4ubuntu5.6", 1, "1.2.3", "4ubuntu5.6"},
		{"1.0-1-1", 0, "1.0-1", "1"},
	}
	for _, c := range cases {
		v, err := ParseVersion(c.in)
		if err != nil {
			t.Errorf("ParseVersion(%q): %v", c.in, err)
			continue
		}
		if v.Epoch != c.epoch || v.Upstream != c.upstream || v.Revision != c.revision {
			t.Errorf("ParseVersion(%q) = %+v", c.in, v)
		}
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc:1.0", "-1"} {
		if _, err := ParseVersion(in); err == nil {
			t.Errorf("ParseVersion(%q): expected error", in)
		}
	}
}

func TestIsUbuntu(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1.0-1ubuntu1", true},
		{"1.0-1ubuntu0.22.04.1", true},
		{"1.0-1", false},
		{"1.0", false},
	}
	for _, c := range cases {
		v, err := ParseVersion(c.in)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", c.in, err)
		}
		if v.IsUbuntu() != c.want {
			t.Errorf("IsUbuntu(%q) = %v, want %v", c.in, !c.want, c.want)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	// Each pair is a < b.
	ordered := [][2]string{
		{"1.0-1", "1.0-2"},
		{"1.0-1", "1.0-1ubuntu1"},
		{"1.0-1ubuntu1", "1.0-1ubuntu2"},
		{"1.0-1ubuntu9", "1.0-1ubuntu10"},
		{"1.9-1", "1.10-1"},
		{"1.0-1", "1.0.1-1"},
		{"1.0~rc1-1", "1.0-1"},
		{"1.0~beta-1", "1.0~rc1-1"},
		{"1.0-1", "2:0.5-1"},
		{"1.0-1ubuntu0.22.04.1", "1.0-1ubuntu0.22.04.2"},
		{"1.0+dfsg-1", "1.0+dfsg-2"},
	}
	for _, p := range ordered {
		if CompareVersions(p[0], p[1]) >= 0 {
			t.Errorf("expected %q < %q", p[0], p[1])
		}
		if CompareVersions(p[1], p[0]) <= 0 {
			t.Errorf("expected %q > %q", p[1], p[0])
		}
	}

	for _, v := range []string{"1.0-1", "2:1.0~rc1-1ubuntu1"} {
		if CompareVersions(v, v) != 0 {
			t.Errorf("expected %q == %q", v, v)
		}
	}
}
