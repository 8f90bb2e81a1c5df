package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/tubes/internal/adapter"
	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/state"
	"github.com/mmcdole/tubes/internal/store"
	"github.com/mmcdole/tubes/internal/tui"
	"github.com/mmcdole/tubes/internal/youtube"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, setup bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&setup, "setup", false, "enter a new API key")
	flag.Parse()

	if showVersion {
		fmt.Printf("tubes %s\n", Version)
		return
	}

	if err := run(setup); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(forceSetup bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting tubes", "version", Version)

	if forceSetup || (!cfg.IsConfigured() && term.IsTerminal(int(os.Stdin.Fd()))) {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}
	client, err := newClient(cfg, cfg.API.Key, logger)
	if err != nil {
		return err
	}

	prefs, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		// Run without persistence rather than refusing to start
		logger.Warn("persistence unavailable", "path", cfg.Storage.Path, "error", err)
		prefs = store.NewDetached(logger)
	}
	defer prefs.Close()

	st := state.New(state.Deps{
		Source:       client,
		Prefs:        prefs,
		Logger:       logger,
		Region:       cfg.API.RegionCode,
		DefaultTheme: domain.ParseTheme(cfg.UI.Theme),
		SidebarOpen:  cfg.UI.ShowSidebar,
	})

	suggest := youtube.NewSuggestClient(cfg.API.SuggestURL, &http.Client{Timeout: cfg.API.Timeout}, logger)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	startPage := tui.PageHome
	if strings.EqualFold(cfg.UI.DefaultView, "trending") {
		startPage = tui.PageTrending
	}

	model := tui.New(tui.Deps{
		Store:       st,
		Suggestions: suggest,
		Player:      launcher,
		Logger:      logger,
		StartPage:   startPage,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func newClient(cfg *adapter.Config, key string, logger *slog.Logger) (*youtube.Client, error) {
	return youtube.NewClient(youtube.Options{
		BaseURL:           cfg.API.BaseURL,
		APIKey:            key,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Timeout:           cfg.API.Timeout,
	}, logger)
}

// runSetupFlow asks for an API key, checks it and saves it into cfg.
// An empty key skips setup; the UI then explains how to add one.
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to tubes!")
	fmt.Println()
	fmt.Println("tubes needs a YouTube Data API v3 key.")
	fmt.Println("Create one at https://console.cloud.google.com/apis/credentials")
	fmt.Println()

	for {
		fmt.Print("API key (leave empty to skip): ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		key := strings.TrimSpace(string(raw))
		if key == "" {
			return nil
		}

		client, err := newClient(cfg, key, adapter.NullLogger())
		if err != nil {
			return err
		}

		if err := verifyKeyWithSpinner(client, cfg.API.RegionCode); err != nil {
			fmt.Printf("✗ %s\n", youtube.ErrorMessage(err))
			if errors.Is(err, domain.ErrProviderOffline) {
				return err
			}
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		cfg.API.Key = key
		if err := adapter.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("✓ Configuration saved!")
		fmt.Println()
		return nil
	}
}

// verifyKeyWithSpinner makes one cheap request with the key while showing a spinner
func verifyKeyWithSpinner(client *youtube.Client, region string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.MostPopular(ctx, region, 1)
		resultCh <- err
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Checking key...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ Key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("key check timed out")
		}
	}
}
