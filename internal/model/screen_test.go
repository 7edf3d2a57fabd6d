package model

import (
	"errors"
	"testing"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func newTestScreen(tags ...string) *Screen {
	return NewScreen(0, "eDP-1", tiling.Rect{Width: 1280, Height: 720}, TagOptions{
		Names:  tags,
		Layout: tiling.MasterStack{},
		Params: tiling.DefaultParams(),
	})
}

func TestViewTag_InvalidIndexLeavesStateUnchanged(t *testing.T) {
	s := newTestScreen("1", "2", "3", "4")
	if err := s.ViewTag(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.ViewTag(5)
	if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	if s.ViewedIndex() != 2 {
		t.Fatalf("expected viewed tag to stay 2, got %d", s.ViewedIndex())
	}
	if err := s.ViewTag(-1); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag for negative index, got %v", err)
	}
}

func TestViewPreviousTag(t *testing.T) {
	s := newTestScreen("1", "2", "3")
	s.ViewTag(1)
	s.ViewTag(2)
	if err := s.ViewPreviousTag(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ViewedIndex() != 1 {
		t.Fatalf("expected tag 1, got %d", s.ViewedIndex())
	}
}

func TestNewScreen_DefaultsToSingleTag(t *testing.T) {
	s := newTestScreen()
	if len(s.Tags()) != 1 || s.FocusedTag().Name() != "1" {
		t.Fatalf("expected a single tag named 1, got %d tags", len(s.Tags()))
	}
}

func TestMoveClient(t *testing.T) {
	s := newTestScreen("1", "2")
	s.AdoptClient(newClient(7))

	if err := s.MoveClient(7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tag, c, ok := s.FindClient(7)
	if !ok || tag.Index() != 1 || c.Tag != 1 {
		t.Fatalf("expected client on tag 1, got tag=%v client=%+v", tag, c)
	}
	if s.FocusedTag().Len() != 0 {
		t.Fatalf("expected source tag empty")
	}
	if err := s.MoveClient(99, 0); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if err := s.MoveClient(7, 9); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestStrutShrinksWorkAreaAndRelayouts(t *testing.T) {
	s := newTestScreen("1")
	s.AdoptClient(newClient(1))

	s.SetStrut(500, platform.Padding{Top: 20})
	if got := s.WorkArea(); got != (tiling.Rect{Y: 20, Width: 1280, Height: 700}) {
		t.Fatalf("unexpected work area %+v", got)
	}
	c, _ := s.FocusedClient()
	if c.Geometry != (tiling.Rect{Y: 20, Width: 1280, Height: 700}) {
		t.Fatalf("expected relayout into work area, got %+v", c.Geometry)
	}

	if !s.RemoveStrut(500) {
		t.Fatalf("expected strut to be known")
	}
	if c.Geometry != (tiling.Rect{Width: 1280, Height: 720}) {
		t.Fatalf("expected full area after strut removal, got %+v", c.Geometry)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestScreen("web", "code")
	s.AdoptClient(newClient(1))
	s.AdoptClient(newClient(2))

	snap := s.Snapshot()
	if snap.Name != "eDP-1" || len(snap.Tags) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	web := snap.Tags[0]
	if !web.Viewed || web.Focused != 1 || len(web.Clients) != 2 {
		t.Fatalf("unexpected tag snapshot %+v", web)
	}
	if web.Layout != tiling.LayoutMasterStack {
		t.Fatalf("expected master-stack, got %s", web.Layout)
	}
}
