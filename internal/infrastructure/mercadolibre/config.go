package mercadolibre

import "errors"

// ProductionAPIURL is the production MercadoLibre API endpoint
const ProductionAPIURL = "https://api.mercadolibre.com"

// Errors for MercadoLibre configuration
var (
	ErrConfigMissingAccessToken = errors.New("mercadolibre: access token is required")
	ErrConfigMissingSellerID    = errors.New("mercadolibre: seller id is required")
)

// Config holds configuration for the MercadoLibre order search API
type Config struct {
	// AccessToken is the OAuth bearer token for API requests
	AccessToken string
	// SellerID is the seller account whose orders are polled
	SellerID string
	// APIBaseURL is the base URL for the API (overridable for tests)
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a new MercadoLibre configuration with defaults
func NewConfig(accessToken, sellerID string) *Config {
	return &Config{
		AccessToken:    accessToken,
		SellerID:       sellerID,
		APIBaseURL:     ProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.SellerID == "" {
		return ErrConfigMissingSellerID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = ProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
