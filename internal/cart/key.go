package cart

import (
	"sort"
	"strings"

	"github.com/noah-isme/toko-client/internal/catalog"
)

// ResolveKey derives the stable identity of a cart line from a product id
// and an optional variant selection. The same product with different
// selections yields different keys; identical selections yield the same key
// no matter what order the groups were chosen in. A product without
// variants resolves to its bare id.
func ResolveKey(productID string, selected catalog.SelectedVariants) string {
	if len(selected) == 0 {
		return productID
	}
	tokens := make([]string, 0, len(selected))
	for groupType, opt := range selected {
		if opt.ID == "" {
			continue
		}
		tokens = append(tokens, groupType+":"+opt.ID)
	}
	if len(tokens) == 0 {
		return productID
	}
	sort.Strings(tokens)
	return productID + "#" + strings.Join(tokens, "|")
}
