package woocommerce

import "errors"

// Errors for WooCommerce configuration
var (
	ErrConfigMissingConsumerKey    = errors.New("woocommerce: consumer key is required")
	ErrConfigMissingConsumerSecret = errors.New("woocommerce: consumer secret is required")
	ErrConfigMissingAPIBaseURL     = errors.New("woocommerce: api base url is required")
)

// Config holds configuration for the WooCommerce REST API
type Config struct {
	// ConsumerKey is the REST API consumer key
	ConsumerKey string
	// ConsumerSecret is the REST API consumer secret
	ConsumerSecret string
	// APIBaseURL is the store API root, e.g. https://store.example.com/wp-json/wc/v3
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a new WooCommerce configuration with defaults
func NewConfig(consumerKey, consumerSecret, apiBaseURL string) *Config {
	return &Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		APIBaseURL:     apiBaseURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.ConsumerKey == "" {
		return ErrConfigMissingConsumerKey
	}
	if c.ConsumerSecret == "" {
		return ErrConfigMissingConsumerSecret
	}
	if c.APIBaseURL == "" {
		return ErrConfigMissingAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
