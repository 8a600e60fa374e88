package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
)

const (
	// Altitude span of the canvas in degrees; the horizon sits in the
	// middle so sub-horizon twilight positions stay visible.
	skyElTop    = 60.0
	skyElBottom = -30.0

	glyphSun  = '☀'
	glyphMoon = '☾'

	colorSun      = "220"
	colorMoon     = "252"
	colorHorizon  = "241"
	colorCardinal = "244"
)

// SkyViewModel renders sun and moon over an azimuth/altitude canvas.
type SkyViewModel struct {
	width  int
	height int

	// Azimuth pan offset in degrees; 0 centers the view on south.
	panAz float64

	snapshot state.Snapshot
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.panAz -= 15
		case "right", "l":
			m.panAz += 15
		case "0":
			m.panAz = 0
		}
	}
	return m, nil
}

// View renders the sky canvas.
func (m SkyViewModel) View() string {
	if m.snapshot.Report == nil {
		return "Computing almanac...\n"
	}
	w, h := m.canvasSize()

	canvas := make([][]rune, h)
	colors := make([][]string, h)
	for y := range canvas {
		canvas[y] = make([]rune, w)
		colors[y] = make([]string, w)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	horizonY := m.elToRow(0, h)
	for x := 0; x < w; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = colorHorizon
	}

	// Cardinal markers along the horizon.
	for _, c := range []struct {
		az    float64
		label rune
	}{{0, 'N'}, {90, 'E'}, {180, 'S'}, {270, 'W'}} {
		if x, ok := m.azToCol(c.az, w); ok {
			canvas[horizonY][x] = c.label
			colors[horizonY][x] = colorCardinal
		}
	}

	r := m.snapshot.Report
	m.plot(canvas, colors, r.SunPos.AzimuthDegrees, r.SunPos.AltitudeDegrees, glyphSun, colorSun)
	m.plot(canvas, colors, r.MoonPos.AzimuthDegrees, r.MoonPos.AltitudeDegrees, glyphMoon, colorMoon)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sky"))
	b.WriteString(fmt.Sprintf("  ☀ %+.1f° az %.1f°   ☾ %+.1f° az %.1f°\n",
		r.SunPos.AltitudeDegrees, r.SunPos.AzimuthDegrees,
		r.MoonPos.AltitudeDegrees, r.MoonPos.AzimuthDegrees))

	skyBg := skyBackground(r.SunPos.AltitudeDegrees)
	tintStyle := lipgloss.NewStyle().Background(lipgloss.Color(skyBg))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch := string(canvas[y][x])
			switch {
			case colors[y][x] != "":
				ch = lipgloss.NewStyle().Foreground(lipgloss.Color(colors[y][x])).Render(ch)
			case y < horizonY:
				ch = tintStyle.Render(ch)
			}
			b.WriteString(ch)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// skyBackground picks the above-horizon tint from the sun's altitude,
// stepping through the twilight bands down to night.
func skyBackground(sunAltDeg float64) string {
	switch {
	case sunAltDeg >= 0:
		return "24" // daylight
	case sunAltDeg >= -6:
		return "60" // civil twilight
	case sunAltDeg >= -12:
		return "237" // nautical twilight
	case sunAltDeg >= -18:
		return "235" // astronomical twilight
	default:
		return "233" // night
	}
}

func (m SkyViewModel) canvasSize() (int, int) {
	w := m.width
	if w < 20 {
		w = 80
	}
	h := m.height - 2
	if h < 8 {
		h = 16
	}
	return w, h
}

func (m SkyViewModel) plot(canvas [][]rune, colors [][]string, azDeg, elDeg float64, glyph rune, color string) {
	h := len(canvas)
	if h == 0 {
		return
	}
	w := len(canvas[0])

	if elDeg > skyElTop || elDeg < skyElBottom {
		return
	}
	x, ok := m.azToCol(azDeg, w)
	if !ok {
		return
	}
	y := m.elToRow(elDeg, h)
	canvas[y][x] = glyph
	colors[y][x] = color
}

// azToCol maps an azimuth to a canvas column. The view spans the full
// 360° with south at the center, shifted by the pan offset.
func (m SkyViewModel) azToCol(azDeg float64, w int) (int, bool) {
	rel := azDeg - 180 - m.panAz
	for rel < -180 {
		rel += 360
	}
	for rel >= 180 {
		rel -= 360
	}
	x := int((rel + 180) / 360 * float64(w-1))
	if x < 0 || x >= w {
		return 0, false
	}
	return x, true
}

// elToRow maps an altitude to a canvas row, top row = skyElTop.
func (m SkyViewModel) elToRow(elDeg float64, h int) int {
	frac := (skyElTop - elDeg) / (skyElTop - skyElBottom)
	y := int(frac * float64(h-1))
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	return y
}
