package domain

import (
	"math"
	"math/bits"
	"sort"
)

const secondsPerHour = 3600

// Upper bounds accepted for catalog entries.
const (
	MaxBusinessCost  int64 = 1_000_000_000_000_000
	MaxIncomePerHour int64 = 1_000_000_000_000
)

// BusinessDefinition describes a purchasable business.
type BusinessDefinition struct {
	ID            int64  `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Cost          int64  `json:"cost" yaml:"cost"`
	IncomePerHour int64  `json:"income_per_hour" yaml:"income_per_hour"`
}

// Catalog is the immutable table of business definitions, built once at
// startup. The zero value is an empty catalog.
type Catalog struct {
	list []BusinessDefinition
	byID map[int64]BusinessDefinition
}

// DefaultBusinesses is the reference catalog.
func DefaultBusinesses() []BusinessDefinition {
	return []BusinessDefinition{
		{ID: 1, Name: "Lemonade Stand", Cost: 500, IncomePerHour: 25},
		{ID: 2, Name: "Corner Shop", Cost: 5000, IncomePerHour: 200},
		{ID: 3, Name: "Small Cafe", Cost: 25000, IncomePerHour: 1100},
		{ID: 4, Name: "IT Startup", Cost: 150000, IncomePerHour: 7500},
	}
}

// NewCatalog builds a catalog from defs, keeping their order stable by
// ascending cost. Callers are expected to validate defs beforehand; on
// duplicate ids the first definition wins.
func NewCatalog(defs []BusinessDefinition) Catalog {
	c := Catalog{
		list: make([]BusinessDefinition, 0, len(defs)),
		byID: make(map[int64]BusinessDefinition, len(defs)),
	}
	for _, d := range defs {
		if _, dup := c.byID[d.ID]; dup {
			continue
		}
		c.byID[d.ID] = d
		c.list = append(c.list, d)
	}
	sort.SliceStable(c.list, func(i, j int) bool { return c.list[i].Cost < c.list[j].Cost })
	return c
}

// List returns a copy of all definitions.
func (c Catalog) List() []BusinessDefinition {
	return append([]BusinessDefinition(nil), c.list...)
}

// Lookup resolves a business definition by id.
func (c Catalog) Lookup(id int64) (BusinessDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Len returns the number of definitions.
func (c Catalog) Len() int {
	return len(c.list)
}

// EarnedSince returns the whole currency units a business produced between
// its checkpoint and now: floor(elapsed * income_per_hour / 3600). Sub-unit
// remainders are not carried. Negative elapsed time yields zero. The product
// is computed in 128 bits and the result saturates at math.MaxInt64.
func EarnedSince(def BusinessDefinition, owned OwnedBusiness, now int64) int64 {
	elapsed := now - owned.LastCollectionTime
	if elapsed <= 0 || def.IncomePerHour <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(elapsed), uint64(def.IncomePerHour))
	if hi >= secondsPerHour {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, secondsPerHour)
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q)
}

// SaturatingAdd returns a+b, clamped at math.MaxInt64 for positive b.
func SaturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Accrue computes the income of every business in businesses at instant now.
// It returns the total and a new slice in which the checkpoint of each
// business that earned at least one unit is moved to now. Businesses that
// earned nothing, or whose id is not in the catalog, keep their checkpoint so
// partial time keeps accumulating. The input slice is not modified.
func Accrue(catalog Catalog, businesses []OwnedBusiness, now int64) (int64, []OwnedBusiness) {
	updated := make([]OwnedBusiness, len(businesses))
	copy(updated, businesses)

	var total int64
	for i, owned := range updated {
		def, ok := catalog.Lookup(owned.ID)
		if !ok {
			continue
		}
		earned := EarnedSince(def, owned, now)
		if earned > 0 {
			total = SaturatingAdd(total, earned)
			updated[i].LastCollectionTime = now
		}
	}
	return total, updated
}
