package ordersync

import "errors"

var (
	// SKU decoding errors
	ErrMalformedSKU = errors.New("ordersync: malformed seller SKU")

	// Marketplace errors
	ErrMarketplaceUnavailable     = errors.New("ordersync: marketplace temporarily unavailable")
	ErrMarketplaceInvalidResponse = errors.New("ordersync: invalid marketplace response")

	// Storefront errors
	ErrProductNotFound        = errors.New("ordersync: product not found in catalog")
	ErrStorefrontUnavailable  = errors.New("ordersync: storefront temporarily unavailable")
	ErrOrderCreationFailed    = errors.New("ordersync: storefront order creation failed")
	ErrStatusUpdateFailed     = errors.New("ordersync: storefront order status update failed")
	ErrInvalidStorefrontOrder = errors.New("ordersync: invalid storefront order payload")

	// Run coordination errors
	ErrRunInProgress = errors.New("ordersync: a sync run is already in progress")

	// Ledger errors
	ErrSyncRecordNotFound = errors.New("ordersync: sync record not found")
)
