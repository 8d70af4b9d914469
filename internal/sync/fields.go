package sync

import (
	"strconv"
	"strings"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// Helpers for pulling loosely-typed fields out of platform payloads. Source
// platforms disagree on types (numbers arrive as strings, ids as numbers), so
// everything funnels through these.

func getString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// getFloat returns 0 for absent or unparsable numeric fields.
func getFloat(m map[string]interface{}, keys ...string) float64 {
	if m == nil {
		return 0
	}
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func getBool(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

func asMap(v interface{}) domain.JSONMap {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return domain.JSONMap{}
}

// displayName prefers "first_name last_name", falling back to "name".
func displayName(m map[string]interface{}) string {
	full := strings.TrimSpace(getString(m, "first_name") + " " + getString(m, "last_name"))
	if full != "" {
		return full
	}
	return getString(m, "name")
}

// propertyCity digs the city out of a nested address block, falling back to a
// top-level field.
func propertyCity(m map[string]interface{}) string {
	if addr, ok := m["address"].(map[string]interface{}); ok {
		if city := getString(addr, "city"); city != "" {
			return city
		}
	}
	return getString(m, "city")
}

func priceCurrency(m map[string]interface{}) string {
	if cur := getString(m, "price_currency"); cur != "" {
		return cur
	}
	return domain.DefaultCurrency
}

func stringOr(m map[string]interface{}, key, fallback string) string {
	if v := getString(m, key); v != "" {
		return v
	}
	return fallback
}
