package toolbar

import "github.com/MrSnakeDoc/docnav/internal/domain"

// Bucket holds the items of one toolbar link, in input order.
type Bucket struct {
	Link  domain.ToolbarLink `json:"link"`
	Items []domain.Member    `json:"items"`
}

// Groups is the result of GroupBy: one bucket per configured link, in link order.
type Groups struct {
	Buckets []Bucket `json:"buckets"`
	byID    map[string]int
}

// GroupBy partitions items by kind into the configured toolbar links.
//
// The toolbar is the exhaustive set of visible kinds: an item whose kind
// matches no link id is omitted from every bucket, which is not an error.
func GroupBy(links []domain.ToolbarLink, items []domain.Member) Groups {
	g := Groups{
		Buckets: make([]Bucket, len(links)),
		byID:    make(map[string]int, len(links)),
	}
	for i, link := range links {
		g.Buckets[i] = Bucket{Link: link}
		if _, dup := g.byID[link.ID]; !dup {
			g.byID[link.ID] = i
		}
	}

	for _, item := range items {
		i, ok := g.byID[item.Kind]
		if !ok {
			continue
		}
		g.Buckets[i].Items = append(g.Buckets[i].Items, item)
	}

	return g
}

// Get returns the items bucketed under link id.
func (g Groups) Get(id string) []domain.Member {
	i, ok := g.byID[id]
	if !ok {
		return nil
	}
	return g.Buckets[i].Items
}

// Len is the number of grouped items across all buckets.
func (g Groups) Len() int {
	n := 0
	for _, b := range g.Buckets {
		n += len(b.Items)
	}
	return n
}

// NonEmpty returns only buckets with at least one item, still in link order.
func (g Groups) NonEmpty() []Bucket {
	out := make([]Bucket, 0, len(g.Buckets))
	for _, b := range g.Buckets {
		if len(b.Items) > 0 {
			out = append(out, b)
		}
	}
	return out
}
