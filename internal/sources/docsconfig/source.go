package docsconfig

import (
	"fmt"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Loaded is a validated configuration together with its built sidebar tree.
type Loaded struct {
	Config      *domain.Configuration
	Tree        []*domain.NavEntry
	Fingerprint string
}

// LoadFile reads, validates and maps the payload at path.
func LoadFile(path string) (*Loaded, error) {
	raw, fp, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}

	cfg, tree, err := NewMapper().Map(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Loaded{Config: cfg, Tree: tree, Fingerprint: fp}, nil
}
