package domain

import (
	"sort"
	"strconv"
)

// Cart is the session-scoped selection. Keys of Items are menu item ids in decimal form,
// matching the session shape {restaurant_id, items}.
type Cart struct {
	RestaurantID *int64         `json:"restaurant_id"`
	Items        map[string]int `json:"items"`
}

func NewCart() Cart {
	return Cart{Items: map[string]int{}}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Quantity(menuItemID int64) int {
	return c.Items[cartKey(menuItemID)]
}

// Add puts one unit of item in the cart. A cart holding another restaurant's items is
// reset first.
func (c *Cart) Add(item MenuItem) {
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	if c.RestaurantID != nil && *c.RestaurantID != item.RestaurantID {
		*c = NewCart()
	}
	if c.RestaurantID == nil {
		rid := item.RestaurantID
		c.RestaurantID = &rid
	}
	c.Items[cartKey(item.ID)]++
}

// Remove takes one unit away and drops the entry at zero. It reports whether the cart
// changed.
func (c *Cart) Remove(menuItemID int64) bool {
	key := cartKey(menuItemID)
	qty, ok := c.Items[key]
	if !ok {
		return false
	}
	if qty <= 1 {
		delete(c.Items, key)
	} else {
		c.Items[key] = qty - 1
	}
	return true
}

// MenuItemIDs returns the referenced ids in ascending order. Keys that are not ids are
// skipped.
func (c Cart) MenuItemIDs() []int64 {
	ids := make([]int64, 0, len(c.Items))
	for k, qty := range c.Items {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func cartKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
