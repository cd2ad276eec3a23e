package ordersync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSellerSKU(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCode     string
		wantOverride *int
		wantErr      error
	}{
		{
			name:     "plain code without separator",
			raw:      "ABC-1",
			wantCode: "ABC-1",
		},
		{
			name:         "code with numeric quantity",
			raw:          "ABC-1*3",
			wantCode:     "ABC-1",
			wantOverride: intPtr(3),
		},
		{
			name:     "code with non-numeric quantity keeps original",
			raw:      "ABC-1*lot",
			wantCode: "ABC-1",
		},
		{
			name:     "code with zero quantity keeps original",
			raw:      "ABC-1*0",
			wantCode: "ABC-1",
		},
		{
			name:     "code with negative quantity keeps original",
			raw:      "ABC-1*-2",
			wantCode: "ABC-1",
		},
		{
			name:     "trailing separator with empty quantity",
			raw:      "ABC-1*",
			wantCode: "ABC-1",
		},
		{
			name:    "empty SKU is malformed",
			raw:     "",
			wantErr: ErrMalformedSKU,
		},
		{
			name:    "multiple separators are ambiguous",
			raw:     "ABC*2*3",
			wantErr: ErrMalformedSKU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku, err := DecodeSellerSKU(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, sku.Code)
			if tt.wantOverride != nil {
				require.NotNil(t, sku.QuantityOverride)
				assert.Equal(t, *tt.wantOverride, *sku.QuantityOverride)
			} else {
				assert.Nil(t, sku.QuantityOverride)
			}
		})
	}
}

func TestSellerSKU_Quantity(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		sku, err := DecodeSellerSKU("ABC-1*3")
		require.NoError(t, err)
		assert.Equal(t, 3, sku.Quantity(1))
	})

	t.Run("fallback without override", func(t *testing.T) {
		sku, err := DecodeSellerSKU("ABC-1")
		require.NoError(t, err)
		assert.Equal(t, 5, sku.Quantity(5))
	})
}

func TestWindow_Params(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 250*int(time.Millisecond), time.UTC)
	w := NewLookbackWindow(now, 5*time.Minute)

	assert.Equal(t, "2024-03-15T10:25:00.250Z", w.FromParam())
	assert.Equal(t, "2024-03-15T10:30:00.250Z", w.ToParam())
}

func TestWindow_ParamsConvertToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 3, 15, 5, 0, 0, 0, loc)
	w := NewLookbackWindow(now, time.Minute)

	assert.Equal(t, "2024-03-15T10:00:00.000Z", w.ToParam())
}

func TestNewMarketplaceCustomerProfile(t *testing.T) {
	profile := NewMarketplaceCustomerProfile("BUYER123")

	assert.Equal(t, "BUYER123", profile.FirstName)
	assert.Empty(t, profile.LastName)
	assert.Equal(t, "CO", profile.Country)
	assert.NotEmpty(t, profile.Address)
	assert.NotEmpty(t, profile.Email)
}

func intPtr(v int) *int {
	return &v
}
