package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/salat/internal/app"
	"github.com/mmcdole/salat/internal/config"
	"github.com/mmcdole/salat/internal/location"
	"github.com/mmcdole/salat/internal/log"
	"github.com/mmcdole/salat/internal/provider/aladhan"
	"github.com/mmcdole/salat/internal/provider/arcgis"
	"github.com/mmcdole/salat/internal/provider/ipapi"
	"github.com/mmcdole/salat/internal/schedule"
	"github.com/mmcdole/salat/internal/store"
	"github.com/mmcdole/salat/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var startCity string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&startCity, "city", "", "start on the saved location best matching this name")
	flag.Parse()

	if showVersion {
		fmt.Printf("salat %s\n", Version)
		return
	}

	if err := run(startCity); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(startCity string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("salat is an interactive widget and needs a terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting salat", "version", Version)

	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	timeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second
	geocoder := arcgis.NewClient(cfg.Providers.ArcGISURL, timeout, logger)
	geolocator := ipapi.NewClient(cfg.Providers.IPAPIURL, timeout, logger)
	timesProvider := aladhan.NewClient(cfg.Providers.AladhanURL, cfg.Providers.Method, timeout, logger)

	registry := location.NewRegistry(st, geocoder, logger)
	cache := schedule.NewCache(st, logger)
	orch := app.New(registry, cache, timesProvider, geolocator, nil, logger)
	orch.SetTwelveHourClock(!cfg.UI.TwentyFourHour)

	// -city picks a saved location by fuzzy name before the TUI starts.
	if startCity != "" {
		registry.Load()
		if matches := registry.Search(startCity); len(matches) > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			if err := orch.SelectLocation(ctx, matches[0]); err != nil {
				logger.Error("failed to preselect city", "error", err, "city", matches[0].City)
			}
			cancel()
		} else {
			logger.Warn("no saved location matches", "query", startCity)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(orch),
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
