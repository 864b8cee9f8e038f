package ui

import (
	"slices"
	"testing"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()

	for id, want := range map[OverlayID]bool{
		OverlayPanel:    true,
		OverlayRain:     true,
		OverlayStats:    false,
		OverlayPerf:     false,
		OverlayControls: false,
	} {
		if got := r.IsEnabled(id); got != want {
			t.Errorf("%s enabled = %v, want %v", id, got, want)
		}
	}

	if got := r.Categories(); !slices.Equal(got, []string{"visual", "debug"}) {
		t.Errorf("categories = %v", got)
	}
	if got := len(r.ByCategory("debug")); got != 3 {
		t.Errorf("debug overlays = %d, want 3", got)
	}
}

func TestOverlayToggle(t *testing.T) {
	r := NewOverlayRegistry()

	if !r.Toggle(OverlayStats) || !r.IsEnabled(OverlayStats) {
		t.Error("expected stats on after first toggle")
	}
	if r.Toggle(OverlayStats) || r.IsEnabled(OverlayStats) {
		t.Error("expected stats off after second toggle")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayExclusive(t *testing.T) {
	r := NewOverlayRegistry()
	r.Register(OverlayDescriptor{
		ID:        "calm",
		Category:  "visual",
		Exclusive: []OverlayID{OverlayRain},
	})

	r.Toggle("calm")
	if r.IsEnabled(OverlayRain) {
		t.Error("rain still on after enabling an exclusive overlay")
	}
}
