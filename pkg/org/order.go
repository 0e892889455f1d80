package org

import (
	"sort"
	"strings"
)

// Order compares two siblings. It returns a negative number when a sorts
// before b, a positive number when after, and zero to keep source order.
type Order func(a, b *Entity) int

// ByShortName orders siblings by short name followed by name. Entities
// without a short name are keyed by their name alone.
func ByShortName(a, b *Entity) int {
	return strings.Compare(sortKey(a), sortKey(b))
}

func sortKey(e *Entity) string {
	if e.ShortName != "" {
		return e.ShortName + e.Name
	}
	return e.Name
}

// Named sibling orders.
const (
	OrderSource = "source"
	OrderName   = "name"
)

var orders = map[string]Order{
	OrderSource: nil,
	OrderName:   ByShortName,
}

// LookupOrder returns the order registered under name. The source order
// is a nil Order.
func LookupOrder(name string) (Order, bool) {
	o, ok := orders[name]
	return o, ok
}

// OrderNames returns the registered order names, sorted.
func OrderNames() []string {
	names := make([]string, 0, len(orders))
	for name := range orders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
