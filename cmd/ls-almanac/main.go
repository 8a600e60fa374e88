// Command ls-almanac is a sun and moon almanac for the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/astro"
	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	jsonPath      string
	nowMode       bool
	watchInterval time.Duration
	withAliases   bool
)

const (
	defaultRefresh = time.Minute
	minRefresh     = time.Second
	maxRefresh     = time.Hour
)

func main() {
	lat := flag.Float64("lat", math.NaN(), "Observer latitude in degrees")
	lon := flag.Float64("lon", math.NaN(), "Observer longitude in degrees")
	height := flag.Float64("height", 0, "Observer height in meters")
	site := flag.String("site", "", "Named site preset ("+strings.Join(almanac.SiteKeys(), ", ")+")")
	dateStr := flag.String("date", "", "Report date (YYYY-MM-DD, default today)")
	utc := flag.Bool("utc", false, "Key day boundaries to UTC")
	refresh := flag.Duration("refresh", defaultRefresh, "TUI recompute interval (e.g., 30s, 1m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&jsonPath, "json", "", "Export JSON report to file (use - for stdout)")
	flag.BoolVar(&nowMode, "now", false, "Single-line status mode")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	flag.BoolVar(&withAliases, "aliases", false, "Include deprecated event-name aliases")
	flag.Parse()

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	obs, err := resolveObserver(*site, *lat, *lon, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateCfg.IncludeDeprecated = withAliases
	stateCfg.InUTC = *utc
	stateMgr := state.NewManager(stateCfg, obs)

	if *dateStr != "" {
		anchor, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -date %q: %v\n", *dateStr, err)
			os.Exit(2)
		}
		if *utc {
			anchor = anchor.UTC()
		} else {
			anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.Local)
		}
		// Solve the anchored day at its noon so the transit lands on it.
		stateMgr.SetAnchorDate(anchor.Add(12 * time.Hour))
	}

	headless := summaryMode || jsonPath != "" || nowMode
	if headless {
		runHeadless(ctx, stateMgr, logger)
		return
	}

	model := ui.New(stateMgr)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, stateMgr, p, logger)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// resolveObserver combines the -site preset with explicit coordinates;
// explicit -lat/-lon/-height override the preset's fields.
func resolveObserver(site string, lat, lon, height float64) (astro.Observer, error) {
	var obs astro.Observer

	if site != "" {
		s, ok := almanac.SiteByKey(site)
		if !ok {
			return obs, fmt.Errorf("unknown site %q (known: %s)", site, strings.Join(almanac.SiteKeys(), ", "))
		}
		obs = s.Observer()
	}

	if !math.IsNaN(lat) {
		obs.Lat = lat
		obs.Name = ""
	}
	if !math.IsNaN(lon) {
		obs.Lon = lon
		obs.Name = ""
	}
	if height != 0 {
		obs.Height = height
	}

	if site == "" && (math.IsNaN(lat) || math.IsNaN(lon)) {
		return obs, fmt.Errorf("observer required: pass -lat and -lon, or -site")
	}
	return obs, nil
}

func runComputeLoop(ctx context.Context, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	doCompute(stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compute loop shutting down")
			return
		case <-ticker.C:
			doCompute(stateMgr, p, logger)
		}
	}
}

func doCompute(stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	logger.Debug("Recomputing almanac...")

	if err := stateMgr.Recompute(time.Now()); err != nil {
		logger.Error("Recompute failed: %v", err)
		p.Send(ui.ErrorMsg{Error: err})
		return
	}

	snap := stateMgr.Snapshot()
	logger.Debug("Recompute complete: %d events in %v", len(snap.Report.SunTimes), snap.ComputeDuration)
	p.Send(ui.DataUpdateMsg{Snapshot: snap})
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, logger *logging.Logger) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	outputOnce := func() error {
		if err := stateMgr.Recompute(time.Now()); err != nil {
			return err
		}
		snap := stateMgr.Snapshot()

		// Watch mode on a live terminal redraws in place.
		if watchInterval != 0 && summaryMode && isTTY {
			fmt.Print("\033[H\033[2J")
		}

		if nowMode {
			almanac.WriteNowLine(os.Stdout, snap.Report, time.Now())
			return nil
		}

		if jsonPath != "" {
			export := almanac.ExportReport(snap.Report)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create report file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			almanac.WriteSummaryTable(os.Stdout, snap.Report)
		}

		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				logger.Error("Recompute failed: %v", err)
			}
		}
	}
}
