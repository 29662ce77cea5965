package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-client/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"STATE_DIR":               "/tmp/toko-state",
		"CART_STATE_KEY":          "",
		"WISHLIST_STATE_KEY":      "",
		"FREE_SHIPPING_THRESHOLD": "",
		"FLAT_SHIPPING_RATE":      "",
		"CATALOG_CACHE_TTL":       "",
	})
	require.NoError(t, err)
	require.Equal(t, "cart", cfg.CartStateKey)
	require.Equal(t, "wishlist", cfg.WishlistStateKey)
	require.Equal(t, int64(100_00), cfg.FreeShippingThreshold)
	require.Equal(t, int64(10_00), cfg.FlatShippingRate)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
}

func TestLoadRequiresStateDir(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"STATE_DIR": "",
	})
	require.Error(t, err)
}

func TestLoadRejectsSharedNamespaces(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"STATE_DIR":          "/tmp/toko-state",
		"CART_STATE_KEY":     "same",
		"WISHLIST_STATE_KEY": "same",
	})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"STATE_DIR":               "/tmp/toko-state",
		"CART_STATE_KEY":          "",
		"WISHLIST_STATE_KEY":      "",
		"FREE_SHIPPING_THRESHOLD": "25000",
		"FLAT_SHIPPING_RATE":      "1500",
		"CATALOG_CACHE_TTL":       "30s",
	})
	require.NoError(t, err)
	require.Equal(t, int64(25000), cfg.FreeShippingThreshold)
	require.Equal(t, int64(1500), cfg.FlatShippingRate)
	require.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
}
