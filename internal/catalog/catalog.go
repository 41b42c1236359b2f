package catalog

// Catalog holds studies keyed by id with insertion order preserved for
// rendering. A duplicate id silently overwrites the earlier study's
// values but keeps its original position; feeds rely on that for
// in-place corrections.
//
// Catalogs are built whole and never partially updated: a load either
// replaces the previous catalog or, on failure, leaves an empty one.
type Catalog struct {
	order []string
	byID  map[string]Study
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byID: make(map[string]Study)}
}

// Build constructs a catalog from studies in order, last write winning
// on duplicate ids.
func Build(studies []Study) *Catalog {
	c := New()
	for _, s := range studies {
		if _, seen := c.byID[s.ID]; !seen {
			c.order = append(c.order, s.ID)
		}
		c.byID[s.ID] = s
	}
	return c
}

// Get looks a study up by its correlation key.
func (c *Catalog) Get(id string) (Study, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns the studies in insertion order.
func (c *Catalog) All() []Study {
	out := make([]Study, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len reports how many studies the catalog holds.
func (c *Catalog) Len() int {
	return len(c.order)
}
