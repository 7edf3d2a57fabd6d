package platform

import "testing"

func TestPaddingFor_TopBarOnLeftMonitorOnly(t *testing.T) {
	left := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	sp := StrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}

	if got := PaddingFor(left, 3200, 1080, sp); got != (Padding{Top: 30}) {
		t.Fatalf("expected top padding 30 on left monitor, got %+v", got)
	}
	if got := PaddingFor(right, 3200, 1080, sp); !got.IsZero() {
		t.Fatalf("expected no padding on right monitor, got %+v", got)
	}
}

func TestPaddingFor_FullStrutBottom(t *testing.T) {
	mon := Rect{Width: 1280, Height: 720}
	sp := FullStrut(0, 0, 0, 24, 1280, 720)
	if got := PaddingFor(mon, 1280, 720, sp); got != (Padding{Bottom: 24}) {
		t.Fatalf("expected bottom padding 24, got %+v", got)
	}
}

func TestPaddingAddTakesMaximum(t *testing.T) {
	a := Padding{Top: 10, Left: 5}
	b := Padding{Top: 20, Right: 3}
	if got := a.Add(b); got != (Padding{Top: 20, Left: 5, Right: 3}) {
		t.Fatalf("unexpected sum %+v", got)
	}
}
