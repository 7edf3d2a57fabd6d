package model

import (
	"math/rand"
	"testing"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func newClient(id platform.WindowID) *Client {
	return NewClient(platform.Window{ID: id, Bounds: platform.Rect{Width: 100, Height: 100}})
}

func newTestTag() *Tag {
	t := NewTag(0, "1", tiling.MasterStack{}, tiling.DefaultParams())
	area := tiling.Rect{Width: 1280, Height: 720}
	t.SetArea(area, area)
	return t
}

func TestAddClient_FirstClientBecomesFocused(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	tag.AddClient(newClient(2))

	focused, ok := tag.FocusedClient()
	if !ok || focused.ID != 1 {
		t.Fatalf("expected client 1 focused, got %+v (ok=%v)", focused, ok)
	}
	if tag.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", tag.Len())
	}
}

func TestAddClient_AppliesMasterStackLayout(t *testing.T) {
	tag := newTestTag()
	for _, id := range []platform.WindowID{10, 11, 12} {
		tag.AddClient(newClient(id))
	}

	expected := map[platform.WindowID]tiling.Rect{
		10: {X: 0, Y: 0, Width: 640, Height: 720},
		11: {X: 640, Y: 0, Width: 640, Height: 360},
		12: {X: 640, Y: 360, Width: 640, Height: 360},
	}
	for id, want := range expected {
		c, _ := tag.Client(id)
		if c.Geometry != want {
			t.Fatalf("client %d: expected %+v, got %+v", id, want, c.Geometry)
		}
	}
}

func TestRemoveClient_FocusMovesToNextThenPrevious(t *testing.T) {
	tag := newTestTag()
	for _, id := range []platform.WindowID{1, 2, 3} {
		tag.AddClient(newClient(id))
	}

	tag.SetFocusedClient(2)
	tag.RemoveClient(2)
	if c, _ := tag.FocusedClient(); c == nil || c.ID != 3 {
		t.Fatalf("expected focus on next client 3, got %+v", c)
	}

	tag.RemoveClient(3)
	if c, _ := tag.FocusedClient(); c == nil || c.ID != 1 {
		t.Fatalf("expected focus to wrap to previous client 1, got %+v", c)
	}

	tag.RemoveClient(1)
	if _, ok := tag.FocusedClient(); ok {
		t.Fatalf("expected no focus on empty tag")
	}
}

func TestRemoveClient_NonFocusedLeavesFocus(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	tag.AddClient(newClient(2))

	tag.RemoveClient(2)
	if c, _ := tag.FocusedClient(); c == nil || c.ID != 1 {
		t.Fatalf("expected focus unchanged on 1, got %+v", c)
	}
}

func TestRemoveClient_UnknownIsNoOp(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	if _, ok := tag.RemoveClient(99); ok {
		t.Fatalf("expected not found")
	}
	if tag.Len() != 1 {
		t.Fatalf("expected tag unchanged")
	}
}

func TestSetFocusedClientIf(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	splash := NewClient(platform.Window{ID: 2, Type: platform.WindowTypeSplash})
	tag.AddClient(splash)
	tag.AddClient(newClient(3))

	if tag.SetFocusedClientIf(2, IsControlled) {
		t.Fatalf("expected uncontrolled client to be refused")
	}
	if !tag.SetFocusedClientIf(3, IsControlled) {
		t.Fatalf("expected focus change to 3")
	}
	if tag.SetFocusedClientIf(3, IsControlled) {
		t.Fatalf("expected no change when already focused")
	}
	if tag.SetFocusedClientIf(42, IsControlled) {
		t.Fatalf("expected unknown id to be refused")
	}
	if !tag.SetFocusedClientIf(2, nil) {
		t.Fatalf("expected nil predicate to accept any member")
	}
}

func TestAdjustMasterRatio_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{name: "grows", start: 50, delta: 5, want: 55},
		{name: "stops at lower bound", start: 10, delta: -10, want: 10},
		{name: "overshoots lower bound", start: 15, delta: -20, want: 10},
		{name: "stops at upper bound", start: 90, delta: 10, want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := newTestTag()
			p := tag.Params()
			p.MasterRatio = tt.start
			tag.SetParams(p)

			tag.AdjustMasterRatio(tt.delta)
			if got := tag.Params().MasterRatio; got != tt.want {
				t.Fatalf("expected ratio %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRemoveClient_SkipsUncontrolledSuccessor(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	tag.AddClient(NewClient(platform.Window{ID: 2, Type: platform.WindowTypeNotification}))
	tag.AddClient(newClient(3))

	tag.RemoveClient(1)
	if c, _ := tag.FocusedClient(); c == nil || c.ID != 3 {
		t.Fatalf("expected focus on controlled client 3, got %+v", c)
	}
}

func TestFocusRelativeWraps(t *testing.T) {
	tag := newTestTag()
	for _, id := range []platform.WindowID{1, 2, 3} {
		tag.AddClient(newClient(id))
	}

	tag.FocusRelative(-1)
	if c, _ := tag.FocusedClient(); c.ID != 3 {
		t.Fatalf("expected wrap to 3, got %d", c.ID)
	}
	tag.FocusRelative(1)
	if c, _ := tag.FocusedClient(); c.ID != 1 {
		t.Fatalf("expected wrap to 1, got %d", c.ID)
	}
}

func TestSwapMaster(t *testing.T) {
	tag := newTestTag()
	for _, id := range []platform.WindowID{1, 2, 3} {
		tag.AddClient(newClient(id))
	}
	tag.SetFocusedClient(3)
	if !tag.SwapMaster() {
		t.Fatalf("expected swap")
	}

	clients := tag.Clients()
	if clients[0].ID != 3 || clients[1].ID != 1 || clients[2].ID != 2 {
		t.Fatalf("unexpected order after swap: %d %d %d", clients[0].ID, clients[1].ID, clients[2].ID)
	}
	if clients[0].Geometry.Width != 640 || clients[0].Geometry.Height != 720 {
		t.Fatalf("expected new master to take master geometry, got %+v", clients[0].Geometry)
	}
}

func TestApplyLayout_SkipsFloatingAndFullscreen(t *testing.T) {
	tag := newTestTag()
	tag.AddClient(newClient(1))
	dialog := NewClient(platform.Window{ID: 2, Type: platform.WindowTypeDialog, Bounds: platform.Rect{X: 5, Y: 6, Width: 70, Height: 80}})
	tag.AddClient(dialog)
	full := newClient(3)
	full.Fullscreen = true
	tag.AddClient(full)

	c1, _ := tag.Client(1)
	if c1.Geometry != (tiling.Rect{Width: 1280, Height: 720}) {
		t.Fatalf("expected sole tiled client to fill area, got %+v", c1.Geometry)
	}
	if dialog.Geometry != (tiling.Rect{X: 5, Y: 6, Width: 70, Height: 80}) {
		t.Fatalf("expected floating geometry untouched, got %+v", dialog.Geometry)
	}
	if full.Geometry != (tiling.Rect{Width: 1280, Height: 720}) {
		t.Fatalf("expected fullscreen client to cover bounds, got %+v", full.Geometry)
	}
}

// Random add/remove/focus sequences must keep the focused id a member and
// tiled clients non-overlapping.
func TestTagInvariantsUnderRandomOperations(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		tag := newTestTag()
		next := platform.WindowID(1)

		for step := 0; step < 300; step++ {
			switch rng.Intn(4) {
			case 0, 1:
				c := newClient(next)
				c.Floating = rng.Intn(5) == 0
				tag.AddClient(c)
				next++
			case 2:
				if tag.Len() > 0 {
					clients := tag.Clients()
					tag.RemoveClient(clients[rng.Intn(len(clients))].ID)
				}
			case 3:
				tag.SetFocusedClient(platform.WindowID(rng.Intn(int(next) + 1)))
			}

			if f, ok := tag.FocusedClient(); ok && !tag.Contains(f.ID) {
				t.Fatalf("seed %d step %d: focused client %d not a member", seed, step, f.ID)
			}
			if tag.Len() > 0 {
				if _, ok := tag.FocusedClient(); !ok {
					t.Fatalf("seed %d step %d: non-empty tag lost focus", seed, step)
				}
			}

			var tiled []tiling.Rect
			for _, c := range tag.Clients() {
				if c.Tiled() {
					tiled = append(tiled, c.Geometry)
				}
			}
			for i := range tiled {
				for j := i + 1; j < len(tiled); j++ {
					if tiled[i].Intersects(tiled[j]) {
						t.Fatalf("seed %d step %d: tiled clients overlap: %+v %+v", seed, step, tiled[i], tiled[j])
					}
				}
			}
		}
	}
}
