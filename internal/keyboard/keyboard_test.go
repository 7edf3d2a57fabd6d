package keyboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/tagwm/internal/event"
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func testContext() *event.Context {
	s := model.NewScreen(0, "test", tiling.Rect{Width: 800, Height: 600}, model.TagOptions{Names: []string{"1", "2"}})
	return event.NewContext(s, 1, nil)
}

func TestDispatch_ExactModifierMatch(t *testing.T) {
	kb := New()
	calls := 0
	kb.AppendKeybindings(Bind(Mod4, "t").DoFunc(func(*event.Context) error {
		calls++
		return nil
	}))

	if n, _ := kb.Dispatch(testContext(), Mod4|ModShift, "t"); n != 0 {
		t.Fatalf("expected superset mask not to match, fired %d", n)
	}
	if n, _ := kb.Dispatch(testContext(), 0, "t"); n != 0 {
		t.Fatalf("expected subset mask not to match, fired %d", n)
	}
	if n, _ := kb.Dispatch(testContext(), Mod4, "T"); n != 1 {
		t.Fatalf("expected case-insensitive key match, fired %d", n)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDispatch_UnregisteredChordIsNoOp(t *testing.T) {
	kb := New()
	kb.AppendKeybindings(Bind(Mod4, "Return").DoFunc(func(*event.Context) error {
		t.Fatalf("unexpected call")
		return nil
	}))

	n, err := kb.Dispatch(testContext(), Mod1, "q")
	if n != 0 || err != nil {
		t.Fatalf("expected silent no-op, got n=%d err=%v", n, err)
	}
}

func TestDispatch_DuplicateChordsAllFireInOrder(t *testing.T) {
	kb := New()
	var order []string
	kb.AppendKeybindings(
		Bind(Mod4, "j").Group("focus").DoFunc(func(*event.Context) error {
			order = append(order, "first")
			return nil
		}),
		Bind(Mod4, "k").DoFunc(func(*event.Context) error {
			order = append(order, "other")
			return nil
		}),
		Bind(Mod4, "j").DoFunc(func(*event.Context) error {
			order = append(order, "second")
			return nil
		}),
	)

	n, err := kb.Dispatch(testContext(), Mod4, "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected [first second], got %v (n=%d)", order, n)
	}
}

func TestDispatch_FailureDoesNotStopLaterBindings(t *testing.T) {
	kb := New()
	boom := errors.New("boom")
	ran := false
	kb.AppendKeybindings(
		Bind(ModControl, "x").DoFunc(func(*event.Context) error { return boom }),
		Bind(ModControl, "x").DoFunc(func(*event.Context) error {
			ran = true
			return nil
		}),
	)

	n, err := kb.Dispatch(testContext(), ModControl, "x")
	if n != 2 || !ran {
		t.Fatalf("expected both bindings to fire, n=%d ran=%v", n, ran)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
}

func TestDispatch_PanicDoesNotStopLaterBindings(t *testing.T) {
	kb := New()
	ran := false
	kb.AppendKeybindings(
		Bind(Mod4, "x").DoFunc(func(*event.Context) error { panic("broken") }),
		Bind(Mod4, "x").DoFunc(func(*event.Context) error {
			ran = true
			return nil
		}),
	)

	n, err := kb.Dispatch(testContext(), Mod4, "x")
	if n != 2 || !ran {
		t.Fatalf("expected both bindings to fire, n=%d ran=%v", n, ran)
	}
	if err == nil || !strings.Contains(err.Error(), "panicked: broken") {
		t.Fatalf("expected panic reported as error, got %v", err)
	}
}

func TestDispatch_HandlerMutatesLockedScreen(t *testing.T) {
	kb := New()
	kb.AppendKeybindings(Bind(Mod4, "2").DoFunc(func(ctx *event.Context) error {
		return ctx.Screen().ViewTag(1)
	}))

	ctx := testContext()
	if _, err := kb.Dispatch(ctx, Mod4, "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Screen().ViewedIndex() != 1 {
		t.Fatalf("expected tag 1 viewed")
	}
}

func TestChordsDeduplicates(t *testing.T) {
	kb := New()
	noop := HandlerFunc(func(*event.Context) error { return nil })
	kb.AppendKeybindings(Bind(Mod4, "j").Do(noop), Bind(Mod4, "J").Do(noop), Bind(Mod4|ModShift, "j").Do(noop))
	if got := len(kb.Chords()); got != 2 {
		t.Fatalf("expected 2 distinct chords, got %d", got)
	}
}

func TestParseChord(t *testing.T) {
	cases := []struct {
		in   string
		mods uint16
		key  string
		err  bool
	}{
		{in: "Mod4-Return", mods: Mod4, key: "Return"},
		{in: "Mod4-Shift-q", mods: Mod4 | ModShift, key: "q"},
		{in: "ctrl-alt-Delete", mods: ModControl | Mod1, key: "Delete"},
		{in: "space", key: "space"},
		{in: "Hyper-x", err: true},
		{in: "Mod4-", err: true},
		{in: "", err: true},
	}
	for _, tc := range cases {
		mods, key, err := ParseChord(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if mods != tc.mods || key != tc.key {
			t.Fatalf("%q: expected %d/%s, got %d/%s", tc.in, tc.mods, tc.key, mods, key)
		}
	}
}

func TestFormatChordRoundTrip(t *testing.T) {
	s := FormatChord(Mod4|ModShift, "Return")
	mods, key, err := ParseChord(s)
	if err != nil || mods != Mod4|ModShift || key != "Return" {
		t.Fatalf("round trip of %q failed: %d %s %v", s, mods, key, err)
	}
}
