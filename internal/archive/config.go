package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Product identity sent as the user agent and the default source metadata.
const Product = "tropy-archive"

// Version is the released version of the exporter.
var Version = "0.1.0"

const (
	DefaultEndpoint   = "https://s3.us.archive.org"
	DefaultDetailsURL = "https://archive.org/details"
	DefaultCollection = "opensource"
	DefaultTimeout    = 5 * time.Minute

	placeholderAccessKey = "<your_access_key>"
	placeholderSecretKey = "<your_secret_key>"
)

// ErrNoCredentials is returned by Validate when the API keys are unset.
var ErrNoCredentials = errors.New("archive API credentials are not configured")

// Credentials are the S3-style keys of an archive.org account.
type Credentials struct {
	AccessKey string `yaml:"access_key" env:"ARCHIVE_ACCESS_KEY" env-description:"archive.org S3 access key"`
	SecretKey string `yaml:"secret_key" env:"ARCHIVE_SECRET_KEY" env-description:"archive.org S3 secret key"`
}

// Config holds the exporter settings. Build it with DefaultConfig or
// LoadConfig and treat it as a value afterwards.
type Config struct {
	API          Credentials   `yaml:"api"`
	Collection   string        `yaml:"collection" env:"ARCHIVE_COLLECTION" env-description:"collection new items are added to"`
	IgnoreErrors bool          `yaml:"ignoreErrors" env:"ARCHIVE_IGNORE_ERRORS" env-description:"skip failed files and items instead of stopping"`
	Endpoint     string        `yaml:"endpoint" env:"ARCHIVE_ENDPOINT" env-description:"S3-like upload endpoint"`
	DetailsURL   string        `yaml:"details_url" env:"ARCHIVE_DETAILS_URL" env-description:"base URL of item detail pages"`
	Timeout      time.Duration `yaml:"timeout" env:"ARCHIVE_TIMEOUT" env-description:"timeout for a single file upload"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		API: Credentials{
			AccessKey: placeholderAccessKey,
			SecretKey: placeholderSecretKey,
		},
		Collection:   DefaultCollection,
		IgnoreErrors: true,
		Endpoint:     DefaultEndpoint,
		DetailsURL:   DefaultDetailsURL,
		Timeout:      DefaultTimeout,
	}
}

// LoadConfig layers an optional YAML file and then the environment over
// DefaultConfig. An empty path reads the environment only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return cfg.withDefaults(), nil
}

// Describe returns the environment variable reference for Config.
func Describe() (string, error) {
	header := "Environment variables:"
	cfg := DefaultConfig()
	return cleanenv.GetDescription(&cfg, &header)
}

// Validate reports whether the configuration can authenticate uploads.
func (c Config) Validate() error {
	if c.API.AccessKey == "" || c.API.AccessKey == placeholderAccessKey ||
		c.API.SecretKey == "" || c.API.SecretKey == placeholderSecretKey {
		return ErrNoCredentials
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.DetailsURL == "" {
		c.DetailsURL = DefaultDetailsURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func userAgent() string {
	return Product + " " + Version
}
