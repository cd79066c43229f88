package service

import (
	"errors"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	const maxSize = 10 * 1024 * 1024

	testCases := []struct {
		name     string
		filename string
		mimetype string
		size     int64
		wantErr  error
	}{
		{"png image", "banner.png", "image/png", 500 * 1024, nil},
		{"jpeg image", "photo.JPG", "image/jpeg", 1024, nil},
		{"gif image", "anim.gif", "image/gif", 1024, nil},
		{"mp4 video", "clip.mp4", "video/mp4", 2 * 1024 * 1024, nil},
		{"pdf document", "report.pdf", "application/pdf", 1024, nil},
		{"docx document", "letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, nil},
		{"mimetype with charset", "banner.png", "image/png; charset=binary", 1024, nil},
		{"executable", "virus.exe", "application/octet-stream", 1024, ErrFileType},
		{"script disguised by mimetype", "run.sh", "image/png", 1024, ErrFileType},
		{"png extension wrong mimetype", "banner.png", "application/x-sh", 1024, ErrFileType},
		{"no extension", "README", "application/pdf", 1024, ErrFileType},
		{"oversized", "huge.mp4", "video/mp4", maxSize + 1, ErrFileTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(tc.filename, tc.mimetype, tc.size, maxSize)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateUpload(%q, %q, %d) = %v, want %v", tc.filename, tc.mimetype, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestAnalyticsPeriodDays(t *testing.T) {
	testCases := []struct {
		period string
		days   int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
		{"", 30},
		{"1y", 30},
	}

	for _, tc := range testCases {
		t.Run(tc.period, func(t *testing.T) {
			if got := AnalyticsPeriodDays(tc.period); got != tc.days {
				t.Errorf("AnalyticsPeriodDays(%q) = %d, want %d", tc.period, got, tc.days)
			}
		})
	}
}
