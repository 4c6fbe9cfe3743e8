package archive

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	maxErrorBody    = 1000
	maxResponseBody = 1 << 20
)

// Response describes a successful upload.
type Response struct {
	StatusCode  int
	StatusText  string
	ContentType string
	Body        string
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode  int
	StatusText  string
	ContentType string
	Body        string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP %d: %s", e.StatusCode, e.StatusText)
	if e.ContentType != "" {
		fmt.Fprintf(&b, " (content-type: %s)", e.ContentType)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

// UploadFile PUTs one local file to <endpoint>/<identifier>/<filename>.
// The metadata headers are merged last and win over the standard ones.
// There is a single attempt; any failure is returned to the caller.
func (c *Client) UploadFile(ctx context.Context, identifier, filePath, filename string, metadata Metadata) (*Response, error) {
	c.logger.Debug("Reading file", "path", filePath)
	data, err := c.readFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	c.logger.Debug("File read", "path", filePath, "size_bytes", len(data))

	sum := md5.Sum(data)
	digest := hex.EncodeToString(sum[:])

	uploadURL := strings.TrimRight(c.config.Endpoint, "/") + "/" + url.PathEscape(identifier) + "/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Content-MD5", digest)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", fmt.Sprintf("LOW %s:%s", c.config.API.AccessKey, c.config.API.SecretKey))
	for k, v := range metadata {
		req.Header.Set(k, v)
	}

	c.logger.Debug("Uploading file", "url", uploadURL, "md5", digest, "headers", redact(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send upload request: %w", err)
	}
	defer resp.Body.Close()

	statusText := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody*4))
		return nil, &StatusError{
			StatusCode:  resp.StatusCode,
			StatusText:  statusText,
			ContentType: contentType,
			Body:        truncate(string(body), maxErrorBody),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	result := &Response{
		StatusCode:  resp.StatusCode,
		StatusText:  statusText,
		ContentType: contentType,
		Body:        string(body),
	}
	c.logger.Debug("Upload response", "status", result.StatusCode, "content_type", result.ContentType)
	return result, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	if out.Get("Authorization") != "" {
		out.Set("Authorization", "LOW <redacted>")
	}
	return out
}
