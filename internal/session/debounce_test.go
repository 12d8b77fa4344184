package session

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerDeliversOnlyLatest(t *testing.T) {
	d, err := NewDebouncer(20*time.Millisecond, 2, nil)
	if err != nil {
		t.Fatalf("NewDebouncer: %v", err)
	}
	defer d.Release()

	s := newSidebarSession(15)

	var mu sync.Mutex
	var delivered []string
	onResult := func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, r.Query)
	}

	for _, q := range []string{"s", "su", "sup", "supp"} {
		if err := d.Schedule(s, q, onResult); err != nil {
			t.Fatalf("Schedule(%q): %v", q, err)
		}
	}
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 || delivered[0] != "supp" {
		t.Errorf("delivered = %v, want [supp]", delivered)
	}
	if got := s.Result().Query; got != "supp" {
		t.Errorf("committed = %q, want supp", got)
	}
	if h := s.History(); len(h) != 4 {
		t.Errorf("History = %v, want all four keystrokes", h)
	}
}

func TestDebouncerSeparateSessions(t *testing.T) {
	d, err := NewDebouncer(time.Millisecond, 4, nil)
	if err != nil {
		t.Fatalf("NewDebouncer: %v", err)
	}
	defer d.Release()

	sidebar := newSidebarSession(15)
	toolbar := toolbarSession()

	var mu sync.Mutex
	got := map[Surface]int{}
	record := func(s Surface) func(Result) {
		return func(r Result) {
			mu.Lock()
			defer mu.Unlock()
			got[s] = r.Count
		}
	}

	if err := d.Schedule(sidebar, "down", record(SurfaceSidebar)); err != nil {
		t.Fatal(err)
	}
	if err := d.Schedule(toolbar, "fov", record(SurfaceToolbar)); err != nil {
		t.Fatal(err)
	}
	d.Wait()

	if got[SurfaceSidebar] != 1 || got[SurfaceToolbar] != 2 {
		t.Errorf("counts = %v", got)
	}
}

func TestDebouncerClosedSession(t *testing.T) {
	d, err := NewDebouncer(time.Millisecond, 1, nil)
	if err != nil {
		t.Fatalf("NewDebouncer: %v", err)
	}
	defer d.Release()

	s := newSidebarSession(15)
	s.Close()
	if err := d.Schedule(s, "down", nil); err == nil {
		t.Error("Schedule on a closed session should fail")
	}
}

func TestDebouncerScheduleDoesNotWaitForWorkers(t *testing.T) {
	const delay = 200 * time.Millisecond
	d, err := NewDebouncer(delay, 1, nil)
	if err != nil {
		t.Fatalf("NewDebouncer: %v", err)
	}
	defer d.Release()
	if d.Workers() != 1 {
		t.Fatalf("Workers = %d, want 1", d.Workers())
	}

	var mu sync.Mutex
	delivered := 0
	onResult := func(Result) {
		mu.Lock()
		defer mu.Unlock()
		delivered++
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := d.Schedule(newSidebarSession(15), "down", onResult); err != nil {
			t.Fatalf("Schedule #%d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed >= delay/2 {
		t.Errorf("scheduling three sessions on one worker took %v", elapsed)
	}

	d.Wait()
	mu.Lock()
	defer mu.Unlock()
	if delivered != 3 {
		t.Errorf("delivered = %d, want 3", delivered)
	}
}
