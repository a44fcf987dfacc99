package economy

import "sync"

// ShopItem is one entry of the static shop catalog.
type ShopItem struct {
	Key         string
	DisplayName string
	Price       int64
	Icon        string
}

// Catalog is the fixed shop inventory, in display order.
var Catalog = []ShopItem{
	{Key: "coffee", DisplayName: "Coffee", Price: 50, Icon: "☕"},
	{Key: "laptop", DisplayName: "Laptop", Price: 1000, Icon: "💻"},
	{Key: "car", DisplayName: "Car", Price: 25000, Icon: "🚗"},
}

// ItemByKey looks up a catalog entry.
func ItemByKey(key string) (ShopItem, bool) {
	for _, item := range Catalog {
		if item.Key == key {
			return item, true
		}
	}
	return ShopItem{}, false
}

// Inventory stores per-user item counts. Entries are created lazily; absent
// items count as zero. Items are never consumed, so there is no removal.
type Inventory struct {
	mu    sync.RWMutex
	items map[string]map[string]int64
}

// NewInventory creates an empty inventory store.
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]map[string]int64)}
}

// Add increments the user's count for itemKey by quantity.
func (inv *Inventory) Add(userID, itemKey string, quantity int64) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	owned, ok := inv.items[userID]
	if !ok {
		owned = make(map[string]int64)
		inv.items[userID] = owned
	}
	owned[itemKey] += quantity
}

// Items returns a copy of the user's item counts. Empty map if none.
func (inv *Inventory) Items(userID string) map[string]int64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make(map[string]int64, len(inv.items[userID]))
	for key, count := range inv.items[userID] {
		out[key] = count
	}
	return out
}

// TotalCount returns the total number of items the user owns.
func (inv *Inventory) TotalCount(userID string) int64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var total int64
	for _, count := range inv.items[userID] {
		total += count
	}
	return total
}
