package ui

import (
	"strings"
	"testing"
	"time"
)

func TestRenderFractionBar(t *testing.T) {
	tests := []struct {
		frac   float64
		width  int
		filled int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{-0.3, 10, 0},
		{1.7, 10, 10},
	}

	for _, tt := range tests {
		bar := renderFractionBar(tt.frac, tt.width)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("renderFractionBar(%v, %d): filled = %d, want %d", tt.frac, tt.width, got, tt.filled)
		}
		if got := len([]rune(bar)); got != tt.width {
			t.Errorf("renderFractionBar(%v, %d): width = %d", tt.frac, tt.width, got)
		}
	}
}

func TestHumanUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Hour, "in 3h"},
		{26 * time.Hour, "in 1d 2h"},
		{0, "in 0h"},
		{-time.Hour, "in 0h"},
	}
	for _, tt := range tests {
		if got := humanUntil(tt.d); got != tt.want {
			t.Errorf("humanUntil(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestMoonPanelRender(t *testing.T) {
	m := NewMoonPanelModel().SetSize(80, 24)

	if out := m.View(); !strings.Contains(out, "Computing") {
		t.Errorf("empty-state output = %q", out)
	}

	m = m.UpdateData(testSnapshot(t))
	out := m.View()
	for _, want := range []string{"Illuminated", "Upcoming phases", "new moon", "full moon", "Moonrise"} {
		if !strings.Contains(out, want) {
			t.Errorf("moon panel missing %q", want)
		}
	}
}
