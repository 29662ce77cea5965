// Command demo boots the client-state engine against a local state
// directory and walks through a scripted storefront session: browsing the
// seeded catalog, filling the cart with variant selections, saving and
// moving wishlist items, and sharing the wishlist. Run it twice to watch
// state survive the restart.
package main

import (
	"os"
	"strings"

	"github.com/noah-isme/toko-client/internal/cart"
	"github.com/noah-isme/toko-client/internal/catalog"
	"github.com/noah-isme/toko-client/internal/config"
	"github.com/noah-isme/toko-client/internal/notify"
	"github.com/noah-isme/toko-client/internal/obs"
	"github.com/noah-isme/toko-client/internal/pricing"
	"github.com/noah-isme/toko-client/internal/storage"
	"github.com/noah-isme/toko-client/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "toko_client")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	store := storage.FileStore{Dir: cfg.StateDir}
	sink := notify.LogSink{Log: logger.With().Str("component", "notify").Logger()}
	engine := pricing.Engine{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingRate:      cfg.FlatShippingRate,
	}

	cartSvc := &cart.Service{
		Store:     store,
		Sink:      sink,
		Engine:    engine,
		Log:       logger.With().Str("component", "cart").Logger(),
		Namespace: cfg.CartStateKey,
	}
	cartSvc.Restore()

	wishSvc := &wishlist.Service{
		Store:        store,
		Sink:         sink,
		Cart:         cartSvc,
		Log:          logger.With().Str("component", "wishlist").Logger(),
		Namespace:    cfg.WishlistStateKey,
		ShareBaseURL: cfg.ShareBaseURL,
	}
	wishSvc.Restore()

	products := catalog.NewCachedSource(catalog.Seeded(), cfg.CatalogCacheTTL)

	logger.Info().Int("cart_items", cartSvc.Count()).Int("wishlist_items", wishSvc.Count()).Msg("state restored")

	all := products.List()
	if len(all) < 4 {
		logger.Fatal().Msg("seeded catalog too small for the demo session")
	}
	phone, headset, tumbler, backpack := all[0], all[1], all[2], all[3]

	// A variant-heavy add: the required groups must be satisfied before a
	// checkout-bound add, which the UI checks through RequiredSelected.
	selection := catalog.SelectedVariants{
		"color":   phone.VariantGroups[0].Options[0],
		"storage": phone.VariantGroups[1].Options[1],
	}
	if !pricing.RequiredSelected(phone.VariantGroups, selection) {
		logger.Fatal().Msg("demo selection misses a required variant group")
	}
	_ = cartSvc.AddLine(phone, 1, selection, false)
	_ = cartSvc.AddLine(phone, 1, selection, false) // merges into the same line
	_ = cartSvc.AddLine(tumbler, 2, nil, false)

	_ = wishSvc.Add(headset)
	_ = wishSvc.Add(backpack)
	_ = wishSvc.Add(headset) // already saved

	_ = wishSvc.MoveToCart(headset.ID, 1)
	link := wishSvc.Share()

	agg := cartSvc.Aggregate()
	logger.Info().
		Int("lines", len(agg.Items)).
		Int("item_count", agg.ItemCount).
		Int64("subtotal", agg.Subtotal).
		Int64("discount", agg.Discount).
		Int64("shipping", agg.Shipping).
		Int64("total", agg.Total).
		Str("share_link", truncate(link, 80)).
		Msg("session complete")
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
