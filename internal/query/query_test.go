package query

import (
	"reflect"
	"testing"
)

func TestPlanPredicateWhenNoPattern(t *testing.T) {
	plan := BuildPlan("/tmp", "")
	want := []string{"-0", "-onlyin", "/tmp", `kMDItemFSName == "*"`}
	if !reflect.DeepEqual(plan.Args, want) {
		t.Fatalf("Args = %v, want %v", plan.Args, want)
	}
	if plan.Post != nil {
		t.Fatalf("expected no post matcher, got %v", plan.Post)
	}
}

func TestPlanPredicateForGlobs(t *testing.T) {
	plan := BuildPlan("/tmp", "*.ts")
	if got, want := plan.Args[3], `kMDItemFSName == "*.ts"c`; got != want {
		t.Fatalf("predicate = %q, want %q", got, want)
	}
	if plan.Post != nil {
		t.Fatal("glob queries should not need a post matcher")
	}
}

func TestPlanNameFastPathForSubstrings(t *testing.T) {
	plan := BuildPlan("/Users/alice", "foo")
	want := []string{"-0", "-onlyin", "/Users/alice", "-name", "foo"}
	if !reflect.DeepEqual(plan.Args, want) {
		t.Fatalf("Args = %v, want %v", plan.Args, want)
	}
	if plan.Post != nil {
		t.Fatal("lowercase substrings need no post matcher")
	}
}

func TestPlanSmartCaseAddsPostMatcher(t *testing.T) {
	plan := BuildPlan("/Users/alice", "Foo")
	if plan.Post == nil || plan.Post.Needle != "Foo" {
		t.Fatalf("expected case-sensitive post matcher, got %v", plan.Post)
	}
	if !plan.Post.Matches("/Users/alice/src/FooBar.go") {
		t.Fatal("post matcher should accept a matching basename")
	}
	if plan.Post.Matches("/Users/alice/src/foobar.go") {
		t.Fatal("post matcher should reject a case mismatch")
	}
	if plan.Post.Matches("/Users/alice/Foo/other.go") {
		t.Fatal("post matcher only looks at the basename")
	}
}

func TestPlanSmartCasePredicate(t *testing.T) {
	plan := BuildPlan("/tmp", "SPEC*")
	if got, want := plan.Args[3], `kMDItemFSName == "SPEC*"`; got != want {
		t.Fatalf("uppercase glob should be case-sensitive: %q, want %q", got, want)
	}
}

func TestPlanAvoidsNameFastPathInTempDirs(t *testing.T) {
	for _, base := range []string{
		"/tmp/work",
		"/private/tmp/work",
		"/var/folders/ab/xyz",
		"/private/var/folders/ab/xyz",
	} {
		plan := BuildPlan(base, "foo")
		if got, want := plan.Args[3], `kMDItemFSName == "*foo*"c`; got != want {
			t.Errorf("base %s: predicate = %q, want %q", base, got, want)
		}
	}
}

func TestPredicateEscapesQuotesAndBackslashes(t *testing.T) {
	plan := BuildPlan("/data", `*a"b\c`)
	if got, want := plan.Args[3], `kMDItemFSName == "*a\"b\\c"c`; got != want {
		t.Fatalf("predicate = %q, want %q", got, want)
	}
}
