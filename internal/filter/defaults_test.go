package filter

import "testing"

func TestDefaultExcludedComponents(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"node_modules/foo.js", true},
		{"src/foo.js", false},
		{"a/b/node_modules/dep/index.js", true},
		{"target/debug/app", true},
		{"project/__pycache__/mod.pyc", true},
		{"Pods/Alamofire/README.md", true},
		{".DS_Store", true},
		{"src/builder/main.go", false},
		{"src/distribution/main.go", false},
	}
	for _, tc := range cases {
		if got := IsDefaultExcluded(tc.path, ""); got != tc.want {
			t.Errorf("IsDefaultExcluded(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDefaultExcludedSkipsBaseComponents(t *testing.T) {
	// A search rooted inside a directory named "build" must not exclude
	// everything under it.
	if IsDefaultExcluded("/home/me/build/src/main.go", "/home/me/build") {
		t.Fatal("base component should not trigger the exclusion set")
	}
	if !IsDefaultExcluded("/home/me/build/vendor/lib.go", "/home/me/build") {
		t.Fatal("components below the base should still be tested")
	}
	// Paths outside the base are tested on all components.
	if !IsDefaultExcluded("/elsewhere/dist/app.js", "/home/me/build") {
		t.Fatal("paths outside the base should be tested in full")
	}
}
