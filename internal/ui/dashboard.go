package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	nextEventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// DashboardModel is the event-table view for the current day.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		eventCount := 0
		if m.snapshot.Report != nil {
			eventCount = len(m.snapshot.Report.SunTimes)
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < eventCount-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if eventCount > 0 {
				m.cursor = eventCount - 1
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.Report == nil {
		if m.lastErr == nil {
			b.WriteString("Computing almanac...\n")
		}
		return b.String()
	}

	b.WriteString(m.renderSunSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderEventTable())

	return b.String()
}

func (m DashboardModel) renderSunSummary() string {
	r := m.snapshot.Report

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sun"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  altitude %+7.2f°   azimuth %6.2f°   declination %+6.2f°",
		r.SunPos.AltitudeDegrees, r.SunPos.AzimuthDegrees, r.SunPos.Declination*180/math.Pi))

	if next := r.NextEvent(time.Now()); next != nil {
		b.WriteString("\n  ")
		b.WriteString(nextEventStyle.Render(fmt.Sprintf("next: %s at %s", next.Name, next.Time.Format("15:04:05"))))
	}
	return b.String()
}

func (m DashboardModel) renderEventTable() string {
	r := m.snapshot.Report
	events := r.OrderedEvents()

	var next *astro.SunTime
	if n := r.NextEvent(time.Now()); n != nil {
		next = n
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Today's events"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-24s %-14s %8s", "Event", "Time", "Elev")))
	b.WriteString("\n")

	if m.cursor >= len(events) {
		m.cursor = len(events) - 1
	}

	for i, ev := range events {
		when := ev.Time.Format("15:04:05")
		if !ev.Valid {
			when = "—"
		}
		line := fmt.Sprintf("  %-24s %-14s %7.2f°", ev.Name, when, ev.ElevationAngle)

		style := rowStyle
		switch {
		case i == m.cursor:
			style = selectedRowStyle
		case !ev.Valid:
			style = invalidStyle
		case next != nil && ev.Name == next.Name:
			style = nextEventStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
