package navtree

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

func labels(forest []*domain.NavEntry) []string {
	out := make([]string, 0, len(forest))
	for _, e := range forest {
		out = append(out, e.Label)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildFlat(t *testing.T) {
	items := []domain.SidebarItem{
		{Path: "/", Label: "Welcome", Icon: "<path/>"},
		{Path: "download", Label: "Download"},
		{Path: "installation", Label: "Installation"},
	}

	forest, err := Build(items)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"Welcome", "Download", "Installation"}
	if got := labels(forest); !equalStrings(got, want) {
		t.Errorf("Build() roots = %v, want %v", got, want)
	}
	if forest[0].Icon != "<path/>" {
		t.Errorf("icon markup should pass through verbatim, got %q", forest[0].Icon)
	}
}

func TestBuildPathHierarchy(t *testing.T) {
	items := []domain.SidebarItem{
		{Path: "guides", Label: "Guides"},
		{Path: "support", Label: "Support"},
		{Path: "guides/zeta", Label: "Zeta"},
		{Path: "guides/alpha", Label: "Alpha"},
		{Path: "guides/alpha/linux", Label: "Linux"},
		{Path: "orphan/child", Label: "Orphan child"},
	}

	forest, err := Build(items)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := labels(forest); !equalStrings(got, []string{"Guides", "Support", "Orphan child"}) {
		t.Fatalf("roots = %v", got)
	}
	// Author order, not alphabetical.
	if got := labels(forest[0].Children); !equalStrings(got, []string{"Zeta", "Alpha"}) {
		t.Errorf("guides children = %v, want [Zeta Alpha]", got)
	}
	if got := labels(forest[0].Children[1].Children); !equalStrings(got, []string{"Linux"}) {
		t.Errorf("alpha children = %v, want [Linux]", got)
	}
}

func TestBuildChildDeclaredBeforeParent(t *testing.T) {
	items := []domain.SidebarItem{
		{Path: "guides/setup", Label: "Setup"},
		{Path: "guides", Label: "Guides"},
	}

	forest, err := Build(items)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(forest) != 1 || forest[0].Label != "Guides" {
		t.Fatalf("roots = %v, want [Guides]", labels(forest))
	}
	if got := labels(forest[0].Children); !equalStrings(got, []string{"Setup"}) {
		t.Errorf("children = %v, want [Setup]", got)
	}
}

func TestBuildNested(t *testing.T) {
	items := []domain.SidebarItem{
		{Path: "/", Label: "Welcome"},
		{Path: "api", Label: "API", Children: []domain.SidebarItem{
			{Path: "api-client", Label: "Client"},
			{Path: "api-server", Label: "Server", Access: "protected"},
		}},
	}

	forest, err := Build(items)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(forest) != 2 {
		t.Fatalf("roots = %v", labels(forest))
	}
	if got := labels(forest[1].Children); !equalStrings(got, []string{"Client", "Server"}) {
		t.Errorf("nested children = %v", got)
	}
	if forest[1].Children[1].AccessTag != "protected" {
		t.Errorf("access tag lost, got %q", forest[1].Children[1].AccessTag)
	}
}

func TestBuildDuplicatePath(t *testing.T) {
	t.Run("conflicting labels", func(t *testing.T) {
		items := []domain.SidebarItem{
			{Path: "download", Label: "Download"},
			{Path: "/download/", Label: "Get it"},
		}
		_, err := Build(items)
		var treeErr *domain.TreeError
		if !errors.As(err, &treeErr) {
			t.Fatalf("Build() error = %v, want TreeError", err)
		}
	})

	t.Run("identical redeclaration collapses", func(t *testing.T) {
		items := []domain.SidebarItem{
			{Path: "download", Label: "Download"},
			{Path: "support", Label: "Support"},
			{Path: "download", Label: "Download"},
		}
		forest, err := Build(items)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := labels(forest); !equalStrings(got, []string{"Download", "Support"}) {
			t.Errorf("roots = %v", got)
		}
	})
}

func TestBuildMissingPath(t *testing.T) {
	_, err := Build([]domain.SidebarItem{{Path: "", Label: "Nowhere"}})
	var treeErr *domain.TreeError
	if !errors.As(err, &treeErr) {
		t.Fatalf("Build() error = %v, want TreeError", err)
	}
}

func TestBuildRejectsCycle(t *testing.T) {
	// "a" nested under "a/b" while "a/b" derives "a" as its parent.
	items := []domain.SidebarItem{
		{Path: "a/b", Label: "B", Children: []domain.SidebarItem{
			{Path: "a", Label: "A"},
		}},
	}
	_, err := Build(items)
	var treeErr *domain.TreeError
	if !errors.As(err, &treeErr) {
		t.Fatalf("Build() error = %v, want TreeError", err)
	}
}

func TestBuildPreservesInputOrder(t *testing.T) {
	base := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		perm := r.Perm(len(base))
		items := make([]domain.SidebarItem, 0, len(base)+1)
		items = append(items, domain.SidebarItem{Path: "root", Label: "Root"})
		want := make([]string, 0, len(base))
		for _, i := range perm {
			items = append(items, domain.SidebarItem{Path: "root/" + base[i], Label: base[i]})
			want = append(want, base[i])
		}

		forest, err := Build(items)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := labels(forest[0].Children); !equalStrings(got, want) {
			t.Fatalf("round %d: children = %v, want %v", round, got, want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	forest, err := Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(forest) != 0 {
		t.Errorf("Build(nil) = %v, want empty", forest)
	}
}
