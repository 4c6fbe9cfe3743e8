package archive

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
)

// Client uploads items to an archive.org style S3 endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	readFile   func(string) ([]byte, error)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for uploads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for identifiers.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client. The configuration is used as given; callers
// that need working credentials check Config.Validate first.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:   slog.Default(),
		now:      time.Now,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// GenerateIdentifier derives a fresh identifier for an item from its title.
func (c *Client) GenerateIdentifier(item jsonld.Item) string {
	return GenerateIdentifier(item.Title(), c.now())
}

// BuildMetadata maps an item onto upload headers for the configured collection.
func (c *Client) BuildMetadata(item jsonld.Item) Metadata {
	return BuildMetadata(item, c.config.Collection)
}

// DetailsURL is the public page of an item.
func (c *Client) DetailsURL(identifier string) string {
	return strings.TrimRight(c.config.DetailsURL, "/") + "/" + identifier
}
