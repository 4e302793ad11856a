package protocol

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version     string
		expectError bool
		want        Version
	}{
		{"1.0.0", false, Version{1, 0, 0}},
		{"v2.5.3", false, Version{2, 5, 3}},
		{"10.99.42", false, Version{10, 99, 42}},
		{"invalid", true, Version{}},
		{"1", true, Version{}},
		{"1.2", true, Version{}},
		{"1.-2.0", true, Version{}},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v, err := Parse(tt.version)
			if (err != nil) != tt.expectError {
				t.Fatalf("Parse(%q) error = %v, expectError %v", tt.version, err, tt.expectError)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.version, v, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0}, Version{1, 0, 0}, 0},
		{Version{1, 0, 1}, Version{1, 0, 0}, 1},
		{Version{1, 2, 0}, Version{1, 10, 0}, -1},
		{Version{2, 0, 0}, Version{1, 99, 99}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		pluginVersion string
		errorContains string
	}{
		{"1.0.0", ""},
		{"1.3.0", ""},
		{"1.0.7", ""},
		{"0.9.0", "incompatible major version"},
		{"2.0.0", "incompatible major version"},
		{"one", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.pluginVersion, func(t *testing.T) {
			err := CheckCompatible(tt.pluginVersion)
			if tt.errorContains == "" {
				if err != nil {
					t.Errorf("CheckCompatible(%q) error = %v", tt.pluginVersion, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("CheckCompatible(%q) error = %v, want %q", tt.pluginVersion, err, tt.errorContains)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	if Current().Major != 1 {
		t.Errorf("Current() = %s", Current())
	}
}
