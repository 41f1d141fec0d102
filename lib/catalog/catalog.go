// Package catalog builds an in-memory snapshot of the tradeable item
// catalog from the wiki prices API. The mapping endpoint describes every
// item the wiki knows about; an item counts as tradeable only when the
// latest price endpoint has a quote for it as well.
package catalog

import (
	"fmt"
	"regexp"
	"sort"

	"osrs-info/lib/textutil"
	"osrs-info/lib/wikiprices"
)

// Category tags items whose name marks them as a variant that players
// usually do not want surfacing in search results or price lookups.
type Category int

const (
	CategoryOther Category = iota
	// CategoryCharged covers charge-numbered variants such as
	// "Amulet of glory(4)" or "Ring of dueling(8)".
	CategoryCharged
	// CategoryCorrupted covers corrupted gauntlet/armour variants.
	CategoryCorrupted
	// CategorySeasonal covers deadman and league mode duplicates.
	CategorySeasonal
)

func (c Category) String() string {
	switch c {
	case CategoryCharged:
		return "charged"
	case CategoryCorrupted:
		return "corrupted"
	case CategorySeasonal:
		return "seasonal"
	default:
		return "other"
	}
}

// ParseCategory maps a config spelling onto a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "other":
		return CategoryOther, nil
	case "charged":
		return CategoryCharged, nil
	case "corrupted":
		return CategoryCorrupted, nil
	case "seasonal":
		return CategorySeasonal, nil
	}
	return CategoryOther, fmt.Errorf("unknown item category %q", s)
}

// Rule assigns a category to every item whose display name matches the
// pattern.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// DefaultRules classifies the item variants that exist on the live item
// list today. Charge counters are a parenthesised positive number at the
// end of the name; corrupted and seasonal variants carry a marker word.
func DefaultRules() []Rule {
	return []Rule{
		{CategoryCharged, regexp.MustCompile(`\([1-9]\d*\)$`)},
		{CategoryCorrupted, regexp.MustCompile(`^Corrupted |\(Corrupted\)$`)},
		{CategorySeasonal, regexp.MustCompile(`\(Deadman( Mode)?\)$|\(League(s)? ?[IVX]*\)$|\(Trailblazer\)$`)},
	}
}

// Item is a single catalog entry. Tradeable means the item had a live
// price quote when the catalog was loaded.
type Item struct {
	ID         int
	Name       string
	Examine    string
	Members    bool
	BuyLimit   int
	Value      int
	HighAlch   int
	LowAlch    int
	Icon       string
	Tradeable  bool
	Categories []Category
}

func (i Item) hasCategory(c Category) bool {
	for _, have := range i.Categories {
		if have == c {
			return true
		}
	}
	return false
}

// Catalog is an immutable snapshot of the item list. Build one through
// a Cache rather than constructing it directly.
type Catalog struct {
	items  map[int]Item
	byName map[string]int
	ids    []int
	junk   map[Category]bool
}

func build(entries []wikiprices.MappingEntry, quotes map[int]wikiprices.PriceQuote, rules []Rule, junk []Category) *Catalog {
	cat := &Catalog{
		items:  make(map[int]Item, len(entries)),
		byName: make(map[string]int, len(entries)),
		ids:    make([]int, 0, len(entries)),
		junk:   make(map[Category]bool, len(junk)),
	}
	for _, c := range junk {
		cat.junk[c] = true
	}

	for _, entry := range entries {
		_, quoted := quotes[entry.ID]
		item := Item{
			ID:        entry.ID,
			Name:      entry.Name,
			Examine:   entry.Examine,
			Members:   entry.Members,
			BuyLimit:  entry.BuyLimit,
			Value:     entry.Value,
			HighAlch:  entry.HighAlch,
			LowAlch:   entry.LowAlch,
			Icon:      entry.Icon,
			Tradeable: quoted,
		}
		for _, rule := range rules {
			if rule.Pattern.MatchString(entry.Name) {
				item.Categories = append(item.Categories, rule.Category)
			}
		}

		cat.items[item.ID] = item
		cat.ids = append(cat.ids, item.ID)
		cat.byName[textutil.Fold(item.Name)] = item.ID
	}
	sort.Ints(cat.ids)
	return cat
}

// Len reports how many items the snapshot holds.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id int) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// LookupName returns the item whose display name matches exactly,
// ignoring case and surrounding whitespace.
func (c *Catalog) LookupName(name string) (Item, bool) {
	id, ok := c.byName[textutil.Fold(name)]
	if !ok {
		return Item{}, false
	}
	return c.items[id], true
}

// IsTradeable reports whether the item exists, has a live quote and is
// not tagged with a junk category.
func (c *Catalog) IsTradeable(id int) bool {
	item, ok := c.items[id]
	if !ok || !item.Tradeable {
		return false
	}
	for category := range c.junk {
		if item.hasCategory(category) {
			return false
		}
	}
	return true
}

// All returns every item ordered by id.
func (c *Catalog) All() []Item {
	out := make([]Item, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

// Tradeable returns every tradeable, non-junk item ordered by id.
func (c *Catalog) Tradeable() []Item {
	out := []Item{}
	for _, id := range c.ids {
		if c.IsTradeable(id) {
			out = append(out, c.items[id])
		}
	}
	return out
}
