package handlers

import (
	"testing"
)

func TestParsePaginationValues(t *testing.T) {
	testCases := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "2", "25", 2, 25},
		{"zero page", "0", "5", 1, 5},
		{"negative page", "-3", "5", 1, 5},
		{"zero limit", "1", "0", 1, 10},
		{"limit clamped", "1", "5000", 1, 100},
		{"garbage", "abc", "xyz", 1, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := parsePaginationValues(tc.pageStr, tc.limitStr)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("parsePaginationValues(%q, %q) = (%d, %d), want (%d, %d)",
					tc.pageStr, tc.limitStr, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name  string
		total int64
		limit int
		want  int64
	}{
		{"five over two", 5, 2, 3},
		{"exact", 10, 5, 2},
		{"empty", 0, 10, 0},
		{"single partial", 1, 10, 1},
		{"zero limit", 5, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := totalPages(tc.total, tc.limit); got != tc.want {
				t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
			}
		})
	}
}
