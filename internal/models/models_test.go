package models

import (
	"testing"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		results  []archive.UploadResult
		expected Summary
	}{
		{
			name:     "empty run",
			expected: Summary{},
		},
		{
			name: "mixed results",
			results: []archive.UploadResult{
				{Identifier: "a", Files: []string{"photo-1.jpg", "photo-2.jpg"}},
				{Identifier: "b", Files: []string{}, Error: archive.NoPhotosError},
				{Identifier: "c", Files: []string{"photo-1.png"}},
			},
			expected: Summary{Items: 3, Files: 3, ItemsFailed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &ExportRun{Results: tt.results}
			result := run.Summarize()
			if result != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}
