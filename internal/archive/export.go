package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
)

// NoPhotosError is reported on results of items without photos.
const NoPhotosError = "No photos to upload"

// UploadResult is the outcome of exporting one item.
type UploadResult struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	URL        string   `json:"url" yaml:"url"`
	Files      []string `json:"files" yaml:"files"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

var errNoPath = errors.New("photo has no path")

// uploadState tracks whether the item-creating upload has been attempted.
type uploadState int

const (
	awaitingFirstUpload uploadState = iota
	firstUploadAttempted
)

// Export uploads the photos of one item under a new identifier. Metadata
// headers go with the first attempted upload only, whether or not it
// succeeds. Failed files are skipped when IgnoreErrors is set; otherwise
// the first failure aborts the item.
func (c *Client) Export(ctx context.Context, item jsonld.Item) (*UploadResult, error) {
	identifier := c.GenerateIdentifier(item)
	metadata := c.BuildMetadata(item)

	c.logger.Info("Creating Internet Archive item", "identifier", identifier)

	result := &UploadResult{
		Identifier: identifier,
		URL:        c.DetailsURL(identifier),
		Files:      []string{},
	}

	photos := item.Photos()
	c.logger.Info("Found photos to upload", "identifier", identifier, "count", len(photos))

	if len(photos) == 0 {
		c.logger.Error("No photos found to upload", "identifier", identifier)
		result.Error = NoPhotosError
		return result, nil
	}

	state := awaitingFirstUpload
	for i, photo := range photos {
		filePath, ok := photo.Path()
		filename := fmt.Sprintf("photo-%d%s", i+1, extension(filePath))

		err := errNoPath
		if ok {
			c.logger.Info("Uploading file", "path", filePath, "filename", filename)

			var headers Metadata
			if state == awaitingFirstUpload {
				c.logger.Info("Creating item with first file upload", "identifier", identifier)
				headers = metadata
				state = firstUploadAttempted
			}
			_, err = c.UploadFile(ctx, identifier, filePath, filename, headers)
		}

		if err != nil {
			c.logger.Error("Failed to upload file", "filename", filename, "err", err)
			if c.config.IgnoreErrors {
				continue
			}
			return nil, fmt.Errorf("failed to upload %s for %s: %w", filename, identifier, err)
		}

		result.Files = append(result.Files, filename)
		c.logger.Info("Uploaded file", "identifier", identifier, "filename", filename)
	}

	return result, nil
}

// extension mirrors the usual extname rules: dotfiles and names without a
// dot have no extension.
func extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}
