package scheduler

import (
	"testing"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

func TestSessionReaper_Collect(t *testing.T) {
	reg := session.NewRegistry()
	for i := 0; i < 3; i++ {
		reg.Add(session.New(session.SurfaceSidebar, session.SidebarMatcher{}, session.Options{MaxHistory: 5}))
	}

	reaper := NewSessionReaper(reg, logger.NewNop(), time.Minute, 0)
	if reaper.idleTTL != DefaultSessionIdleTTL {
		t.Errorf("idleTTL = %v, want default", reaper.idleTTL)
	}

	if n := reaper.Collect(); n != 0 {
		t.Errorf("Collect() = %d on fresh sessions, want 0", n)
	}

	reaper.now = func() time.Time { return time.Now().Add(time.Hour) }
	if n := reaper.Collect(); n != 3 {
		t.Errorf("Collect() = %d, want 3", n)
	}
	if reg.Len() != 0 {
		t.Errorf("registry still holds %d sessions", reg.Len())
	}
}
