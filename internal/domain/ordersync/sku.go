package ordersync

import (
	"fmt"
	"strconv"
	"strings"
)

// skuSeparator splits a seller SKU into product code and override quantity.
const skuSeparator = "*"

// SellerSKU is the decoded form of a marketplace seller SKU field.
// The raw field encodes a storefront product code and, optionally, a
// quantity that overrides the line item's own quantity: "<code>*<qty>".
type SellerSKU struct {
	// Code is the storefront product code used for catalog lookup
	Code string
	// QuantityOverride is the decoded override quantity, nil when absent
	QuantityOverride *int
}

// Quantity returns the override quantity when present, otherwise fallback.
func (s SellerSKU) Quantity(fallback int) int {
	if s.QuantityOverride != nil {
		return *s.QuantityOverride
	}
	return fallback
}

// DecodeSellerSKU parses a raw seller SKU string.
//
// Rules:
//   - empty input is malformed
//   - no separator: the whole string is the code, no override
//   - "<code>*<n>" with n a positive base-10 integer: override set to n
//   - "<code>*<x>" with x non-numeric: override absent, caller keeps the
//     original item quantity
//   - more than one separator is ambiguous and malformed
func DecodeSellerSKU(raw string) (SellerSKU, error) {
	if raw == "" {
		return SellerSKU{}, fmt.Errorf("%w: empty", ErrMalformedSKU)
	}

	parts := strings.Split(raw, skuSeparator)
	switch len(parts) {
	case 1:
		return SellerSKU{Code: raw}, nil
	case 2:
		sku := SellerSKU{Code: parts[0]}
		if qty, err := strconv.Atoi(parts[1]); err == nil && qty > 0 {
			sku.QuantityOverride = &qty
		}
		return sku, nil
	default:
		return SellerSKU{}, fmt.Errorf("%w: %q has multiple separators", ErrMalformedSKU, raw)
	}
}
