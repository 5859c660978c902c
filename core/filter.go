package core

import (
	"strings"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// FilterInventory narrows the inventory snapshot to the configured scope.
// All filters are optional and AND-combined: a record survives only when it
// matches the region scope, every configured list filter, and the SKU list.
func FilterInventory(cfg *contract.Config, records []schema.InventoryRecord, skuList []string) []schema.InventoryRecord {
	skuSet := buildSKUSet(skuList)

	filtered := make([]schema.InventoryRecord, 0, len(records))
	for _, r := range records {
		if !contract.MatchesRegion(r.Location, cfg.Region) {
			continue
		}
		if !matchesList(r.Category, cfg.Categories) {
			continue
		}
		if !matchesList(r.Supplier, cfg.Suppliers) {
			continue
		}
		if !matchesList(r.Location, cfg.Locations) {
			continue
		}
		if skuSet != nil {
			if _, ok := skuSet[strings.ToLower(r.Item)]; !ok {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// matchesList reports whether the value matches any entry in the allowed
// list, ignoring case. An empty list matches everything.
func matchesList(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}

// buildSKUSet lowers the SKU list into a lookup set. A nil return means no
// SKU filtering is in effect.
func buildSKUSet(skuList []string) map[string]struct{} {
	if len(skuList) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(skuList))
	for _, sku := range skuList {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			continue
		}
		set[strings.ToLower(sku)] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
