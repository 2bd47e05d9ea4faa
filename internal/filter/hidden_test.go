package filter

import "testing"

func TestHiddenUnderBase(t *testing.T) {
	base := "/home/me/project"
	cases := []struct {
		path string
		want bool
	}{
		{"/home/me/project/.env", true},
		{"/home/me/project/src/config.ts", false},
		{"/home/me/project/src/.cache/entry", true},
		{"/home/me/project/src/file.with.dots", false},
		{"/home/me/project", false},
	}
	for _, tc := range cases {
		if got := IsHiddenUnder(tc.path, base); got != tc.want {
			t.Errorf("IsHiddenUnder(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestHiddenBaseIsNotSelfExcluding(t *testing.T) {
	// Searching inside a dot-directory must not hide its own contents.
	base := "/home/me/.config/nvim"
	if IsHiddenUnder(base+"/init.lua", base) {
		t.Fatal("base components should not count as hidden")
	}
	if !IsHiddenUnder(base+"/.backup/init.lua", base) {
		t.Fatal("dot components below a dot base should still count")
	}
}
