package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

func TestGetString_CoercesNumbers(t *testing.T) {
	m := map[string]interface{}{
		"s": "abc",
		"f": float64(42),
		"i": 7,
		"b": true,
	}

	assert.Equal(t, "abc", getString(m, "s"))
	assert.Equal(t, "42", getString(m, "f"))
	assert.Equal(t, "7", getString(m, "i"))
	assert.Equal(t, "", getString(m, "b"))
	assert.Equal(t, "", getString(m, "missing"))
	assert.Equal(t, "", getString(nil, "s"))
}

func TestGetFloat_FallbackKeysAndDefault(t *testing.T) {
	m := map[string]interface{}{
		"price":    "199.5",
		"per_week": float64(1200),
	}

	assert.Equal(t, 199.5, getFloat(m, "base_price_per_night", "price"))
	assert.Equal(t, float64(1200), getFloat(m, "per_week"))
	assert.Equal(t, float64(0), getFloat(m, "missing"))
	assert.Equal(t, float64(0), getFloat(nil, "price"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Omar Khalil", displayName(map[string]interface{}{"first_name": "Omar", "last_name": "Khalil"}))
	assert.Equal(t, "Omar", displayName(map[string]interface{}{"first_name": "Omar"}))
	assert.Equal(t, "Studio Corp", displayName(map[string]interface{}{"name": "Studio Corp"}))
	assert.Equal(t, "", displayName(nil))
}

func TestPropertyCity_PrefersNestedAddress(t *testing.T) {
	m := map[string]interface{}{
		"city": "Sharjah",
		"address": map[string]interface{}{
			"city": "Dubai",
		},
	}
	assert.Equal(t, "Dubai", propertyCity(m))
	assert.Equal(t, "Sharjah", propertyCity(map[string]interface{}{"city": "Sharjah"}))
}

func TestPriceCurrency_DefaultsToAED(t *testing.T) {
	assert.Equal(t, "USD", priceCurrency(map[string]interface{}{"price_currency": "USD"}))
	assert.Equal(t, domain.DefaultCurrency, priceCurrency(map[string]interface{}{}))
}
