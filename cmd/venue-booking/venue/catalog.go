package venue

import "strings"

// Defaults is the campus venue list used when none is configured.
var Defaults = []string{
	"Audi 1",
	"Audi 2",
	"BSN Hall",
	"Indoor Stadium",
	"AIML Lab 1",
	"CSE Lab",
	"CSE Lab 2",
	"PG Lab First Floor",
}

// Catalog is the ordered, fixed set of bookable venues. It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// NewCatalog builds a catalog from names, trimming blanks and dropping
// duplicates. An empty list falls back to Defaults.
func NewCatalog(names ...string) *Catalog {
	if len(names) == 0 {
		names = Defaults
	}

	c := &Catalog{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := c.index[n]; ok {
			continue
		}
		c.index[n] = struct{}{}
		c.names = append(c.names, n)
	}
	return c
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[strings.TrimSpace(name)]
	return ok
}

// Names returns the venues in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}
