package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
)

type fakePublisher struct {
	mu           sync.Mutex
	fingerprints map[string]string
	configs      map[string]*domain.Configuration
	corrupt      map[string]bool
	deleted      []string
	saves        int
	failSave     bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		fingerprints: map[string]string{},
		configs:      map[string]*domain.Configuration{},
		corrupt:      map[string]bool{},
	}
}

func (p *fakePublisher) SaveSnapshot(_ context.Context, cfg *domain.Configuration, fingerprint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSave {
		return errors.New("redis down")
	}
	p.saves++
	p.fingerprints[cfg.ID] = fingerprint
	stored := *cfg
	p.configs[cfg.ID] = &stored
	delete(p.corrupt, cfg.ID)
	return nil
}

func (p *fakePublisher) GetFingerprint(_ context.Context, id string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fp, ok := p.fingerprints[id]
	if !ok {
		return "", redisstore.ErrNotPublished
	}
	return fp, nil
}

func (p *fakePublisher) GetConfiguration(_ context.Context, id string) (*domain.Configuration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.corrupt[id] {
		return nil, redisstore.ErrCorrupt
	}
	cfg, ok := p.configs[id]
	if !ok {
		return nil, redisstore.ErrNotPublished
	}
	return cfg, nil
}

func (p *fakePublisher) DeleteSnapshot(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fingerprints, id)
	delete(p.configs, id)
	p.deleted = append(p.deleted, id)
	return nil
}

const baseConfig = `var __DOCS_CONFIG__ = {"id":"site","version":"1.0.0","sidebar":[{"n":"/","l":"Welcome"},{"n":"download","l":"Download"}],"search":{"minChars":2}};`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setupReloader(t *testing.T, pub Publisher, trigger chan struct{}) (*ConfigReloader, *index.MemoryIndex, string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.js")
	membersPath := filepath.Join(dir, "members.yaml")
	writeFile(t, cfgPath, baseConfig)
	writeFile(t, membersPath, "- name: Render\n  kind: methods\n")

	idx := index.NewMemoryIndex()
	r := NewConfigReloader(cfgPath, membersPath, pub, idx, logger.NewNop(), time.Hour, trigger)
	return r, idx, cfgPath, membersPath
}

func TestConfigReloader_Reload(t *testing.T) {
	pub := newFakePublisher()
	r, idx, cfgPath, membersPath := setupReloader(t, pub, nil)
	ctx := context.Background()

	changed, err := r.Reload(ctx)
	if err != nil || !changed {
		t.Fatalf("first Reload() = %v, %v; want true, nil", changed, err)
	}
	snap, ok := idx.Current()
	if !ok {
		t.Fatal("no snapshot after reload")
	}
	if snap.Config.ID != "site" || len(snap.Tree) != 2 || len(snap.Members) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if pub.saves != 1 || pub.fingerprints["site"] != snap.Fingerprint {
		t.Errorf("publisher saves = %d, fingerprint = %q", pub.saves, pub.fingerprints["site"])
	}

	changed, err = r.Reload(ctx)
	if err != nil || changed {
		t.Errorf("unchanged Reload() = %v, %v; want false, nil", changed, err)
	}
	if idx.Reloads() != 1 || pub.saves != 1 {
		t.Errorf("unchanged files rebuilt: reloads = %d, saves = %d", idx.Reloads(), pub.saves)
	}

	writeFile(t, membersPath, "- name: Render\n  kind: methods\n- name: Fov\n  kind: fields\n")
	if changed, err := r.Reload(ctx); err != nil || !changed {
		t.Fatalf("Reload() after members change = %v, %v", changed, err)
	}
	next, _ := idx.Current()
	if len(next.Members) != 2 {
		t.Errorf("members = %d, want 2", len(next.Members))
	}
	// Readers holding the old snapshot keep a consistent view.
	if len(snap.Members) != 1 {
		t.Error("previous snapshot was mutated")
	}

	writeFile(t, cfgPath, `{"id":"site"}`)
	if _, err := r.Reload(ctx); err == nil {
		t.Fatal("Reload() of invalid configuration should fail")
	}
	kept, _ := idx.Current()
	if kept != next {
		t.Error("failed reload replaced the snapshot")
	}
}

func TestConfigReloader_RenameRetractsOldPublication(t *testing.T) {
	pub := newFakePublisher()
	r, _, cfgPath, _ := setupReloader(t, pub, nil)
	ctx := context.Background()

	if _, err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	writeFile(t, cfgPath, `{"id":"site-v2","version":"2.0.0"}`)
	if _, err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload() after rename error = %v", err)
	}

	if len(pub.deleted) != 1 || pub.deleted[0] != "site" {
		t.Errorf("deleted = %v, want [site]", pub.deleted)
	}
	if _, ok := pub.fingerprints["site-v2"]; !ok {
		t.Error("renamed configuration not published")
	}

	// Same id again: nothing to retract.
	writeFile(t, cfgPath, `{"id":"site-v2","version":"2.0.1"}`)
	if _, err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(pub.deleted) != 1 {
		t.Errorf("deleted = %v after a same-id reload", pub.deleted)
	}
}

func TestConfigReloader_ReloadConfigError(t *testing.T) {
	r, idx, cfgPath, _ := setupReloader(t, nil, nil)
	writeFile(t, cfgPath, `{"id":"site","version":"1","sidebar":[{"n":"a","l":"A"},{"n":"a","l":"B"}]}`)

	_, err := r.Reload(context.Background())
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Reload() error = %v, want *domain.ConfigError", err)
	}
	if _, ok := idx.Current(); ok {
		t.Error("snapshot installed from an invalid configuration")
	}
}

func TestConfigReloader_PublishFailureIsNotFatal(t *testing.T) {
	pub := newFakePublisher()
	pub.failSave = true
	r, idx, _, _ := setupReloader(t, pub, nil)

	if _, err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if _, ok := idx.Current(); !ok {
		t.Error("snapshot not installed when publication failed")
	}
}

func TestConfigReloader_StartFailsOnInvalidConfig(t *testing.T) {
	r, _, cfgPath, _ := setupReloader(t, nil, nil)
	writeFile(t, cfgPath, `{"version":"1"}`)

	if err := r.Start(context.Background()); err == nil {
		r.Stop()
		t.Fatal("Start() should fail on an invalid configuration")
	}
}

func TestConfigReloader_ManualTrigger(t *testing.T) {
	trigger := make(chan struct{}, 1)
	r, idx, cfgPath, _ := setupReloader(t, nil, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	writeFile(t, cfgPath, `{"id":"site","version":"1.0.1"}`)
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Reloads() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("manual trigger did not reload")
		}
		time.Sleep(5 * time.Millisecond)
	}
	snap, _ := idx.Current()
	if snap.Config.Version != "1.0.1" {
		t.Errorf("Version = %q, want 1.0.1", snap.Config.Version)
	}
	r.Stop()
}
