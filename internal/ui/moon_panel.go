package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
)

var (
	moonTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	moonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// MoonPanelModel shows phase, illumination and the upcoming phases.
type MoonPanelModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewMoonPanelModel creates a new moon panel model.
func NewMoonPanelModel() MoonPanelModel {
	return MoonPanelModel{}
}

// SetSize updates the viewport size.
func (m MoonPanelModel) SetSize(width, height int) MoonPanelModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m MoonPanelModel) UpdateData(snapshot state.Snapshot) MoonPanelModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m MoonPanelModel) Update(msg tea.Msg) (MoonPanelModel, tea.Cmd) {
	return m, nil
}

// View renders the moon panel.
func (m MoonPanelModel) View() string {
	if m.snapshot.Report == nil {
		return "Computing almanac...\n"
	}
	r := m.snapshot.Report
	ill := r.MoonIllum

	var b strings.Builder

	b.WriteString(moonTitleStyle.Render(fmt.Sprintf("  %s  %s", ill.Phase.Emoji, ill.Phase.ID)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Illuminated   %s %.1f%%\n", renderFractionBar(ill.Fraction, 20), ill.Fraction*100))
	b.WriteString(fmt.Sprintf("  Phase value   %.4f\n", ill.PhaseValue))
	b.WriteString(fmt.Sprintf("  Distance      %.0f km\n", r.MoonPos.Distance))
	b.WriteString(fmt.Sprintf("  Altitude      %+.2f°   azimuth %.2f°\n", r.MoonPos.AltitudeDegrees, r.MoonPos.AzimuthDegrees))
	b.WriteString("\n")

	switch {
	case r.MoonTimes.AlwaysUp:
		b.WriteString("  Above the horizon all day\n")
	case r.MoonTimes.AlwaysDown:
		b.WriteString("  Below the horizon all day\n")
	default:
		if !r.MoonTimes.Rise.IsZero() {
			b.WriteString(fmt.Sprintf("  Moonrise      %s\n", r.MoonTimes.Rise.Format("15:04:05")))
		}
		if !r.MoonTimes.Set.IsZero() {
			b.WriteString(fmt.Sprintf("  Moonset       %s\n", r.MoonTimes.Set.Format("15:04:05")))
		}
		if !r.MoonTimes.Highest.IsZero() {
			b.WriteString(moonDimStyle.Render(fmt.Sprintf("  Highest       %s", r.MoonTimes.Highest.Format("15:04:05"))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(moonTitleStyle.Render("  Upcoming phases"))
	b.WriteString("\n")
	b.WriteString(renderNextPhase("🌑 new moon", ill.Next.NewMoon))
	b.WriteString(renderNextPhase("🌓 first quarter", ill.Next.FirstQuarter))
	b.WriteString(renderNextPhase("🌕 full moon", ill.Next.FullMoon))
	b.WriteString(renderNextPhase("🌗 third quarter", ill.Next.ThirdQuarter))

	return b.String()
}

// renderFractionBar draws a filled bar for the illuminated fraction.
func renderFractionBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderNextPhase(label string, t time.Time) string {
	return fmt.Sprintf("  %-18s %s (%s)\n",
		label, t.Format("2006-01-02 15:04"), moonDimStyle.Render(humanUntil(time.Until(t))))
}

// humanUntil formats a duration as the nearest whole days/hours.
func humanUntil(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days == 0 {
		return fmt.Sprintf("in %dh", hours)
	}
	return fmt.Sprintf("in %dd %dh", days, hours)
}
