package config

import (
	"reflect"
	"testing"
)

func TestExcludePatterns(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"*.log", []string{"*.log"}},
		{"*.log, cache/ ,", []string{"*.log", "cache/"}},
		{" , ", nil},
	}
	for _, tc := range cases {
		c := &Config{Exclude: tc.in}
		if got := c.ExcludePatterns(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ExcludePatterns(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
