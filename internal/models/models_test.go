package models

import (
	"testing"
)

func TestIsValidStatus(t *testing.T) {
	testCases := []struct {
		status string
		valid  bool
	}{
		{"pending", true},
		{"completed", true},
		{"failed", true},
		{"", false},
		{"done", false},
		{"Completed", false},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			if got := IsValidStatus(tc.status); got != tc.valid {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tc.status, got, tc.valid)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	testCases := []struct {
		role  string
		valid bool
	}{
		{"admin", true},
		{"editor", true},
		{"", false},
		{"superuser", false},
	}

	for _, tc := range testCases {
		t.Run(tc.role, func(t *testing.T) {
			if got := IsValidRole(tc.role); got != tc.valid {
				t.Errorf("IsValidRole(%q) = %v, want %v", tc.role, got, tc.valid)
			}
		})
	}
}

func TestMediaTypeFromMime(t *testing.T) {
	testCases := []struct {
		mimetype string
		expected string
	}{
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"video/mp4", "video"},
		{"application/pdf", "document"},
		{"application/msword", "document"},
		{"text/plain", "document"},
		{"", "document"},
	}

	for _, tc := range testCases {
		t.Run(tc.mimetype, func(t *testing.T) {
			if got := MediaTypeFromMime(tc.mimetype); got != tc.expected {
				t.Errorf("MediaTypeFromMime(%q) = %q, want %q", tc.mimetype, got, tc.expected)
			}
		})
	}
}
