// Package ordersync contains the order reconciliation bounded context.
// It models the translation of marketplace orders into storefront orders.
//
// Key concepts:
//   - Marketplace: Port interface for the external marketplace order search API
//   - Storefront: Port interface for the storefront catalog and order API
//   - SellerSKU: Value object decoding the composite "<code>*<qty>" SKU field
//   - SyncRecord: Entity recording which marketplace orders were processed
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (MercadoLibre, WooCommerce) are in the infrastructure layer
package ordersync
