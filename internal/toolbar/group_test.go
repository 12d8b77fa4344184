package toolbar

import (
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

func TestGroupBy(t *testing.T) {
	links := []domain.ToolbarLink{
		{ID: "fields", Label: "Fields"},
		{ID: "methods", Label: "Methods"},
	}
	items := []domain.Member{
		{Name: "width", Kind: "fields"},
		{Name: "OnResize", Kind: "events"},
		{Name: "Render", Kind: "methods"},
	}

	g := GroupBy(links, items)

	if got := g.Get("fields"); len(got) != 1 || got[0].Name != "width" {
		t.Errorf("fields bucket = %v, want [width]", got)
	}
	if got := g.Get("methods"); len(got) != 1 || got[0].Name != "Render" {
		t.Errorf("methods bucket = %v, want [Render]", got)
	}
	if got := g.Get("events"); got != nil {
		t.Errorf("events is not configured, got %v", got)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (events item dropped)", g.Len())
	}
}

func TestGroupByKeepsLinkOrderAndItemOrder(t *testing.T) {
	links := []domain.ToolbarLink{
		{ID: "fields", Label: "Fields"},
		{ID: "properties", Label: "Properties", ShortLabel: "Props"},
		{ID: "methods", Label: "Methods"},
		{ID: "events", Label: "Events"},
	}
	items := []domain.Member{
		{Name: "Stop", Kind: "methods"},
		{Name: "Start", Kind: "methods"},
		{Name: "Changed", Kind: "events"},
	}

	g := GroupBy(links, items)

	if len(g.Buckets) != 4 {
		t.Fatalf("Buckets = %d, want one per link", len(g.Buckets))
	}
	for i, link := range links {
		if g.Buckets[i].Link.ID != link.ID {
			t.Errorf("bucket %d = %q, want %q", i, g.Buckets[i].Link.ID, link.ID)
		}
	}
	methods := g.Get("methods")
	if len(methods) != 2 || methods[0].Name != "Stop" || methods[1].Name != "Start" {
		t.Errorf("methods = %v, want input order [Stop Start]", methods)
	}

	nonEmpty := g.NonEmpty()
	if len(nonEmpty) != 2 || nonEmpty[0].Link.ID != "methods" || nonEmpty[1].Link.ID != "events" {
		t.Errorf("NonEmpty() = %v", nonEmpty)
	}
}

func TestGroupByNoLinks(t *testing.T) {
	g := GroupBy(nil, []domain.Member{{Name: "x", Kind: "fields"}})
	if g.Len() != 0 || len(g.Buckets) != 0 {
		t.Errorf("GroupBy() without links = %+v, want empty", g)
	}
}
