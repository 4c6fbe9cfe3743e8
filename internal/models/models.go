package models

import (
	"time"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
)

// ExportRun records one batch export of a JSON-LD document
type ExportRun struct {
	ID         string                 `json:"id" yaml:"id"`
	Collection string                 `json:"collection" yaml:"collection"`
	Endpoint   string                 `json:"endpoint" yaml:"endpoint"`
	Source     string                 `json:"source,omitempty" yaml:"source,omitempty"`
	Results    []archive.UploadResult `json:"results" yaml:"results"`
	CreatedAt  time.Time              `json:"created_at" yaml:"created_at"`
}

// Summary counts the outcome of a run
type Summary struct {
	Items       int `json:"items" yaml:"items"`
	Files       int `json:"files" yaml:"files"`
	ItemsFailed int `json:"items_failed" yaml:"items_failed"`
}

// Summarize counts items, uploaded files and items reporting an error
func (r *ExportRun) Summarize() Summary {
	s := Summary{Items: len(r.Results)}
	for _, result := range r.Results {
		s.Files += len(result.Files)
		if result.Error != "" {
			s.ItemsFailed++
		}
	}
	return s
}
