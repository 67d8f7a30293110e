// cursorctl is a thin demonstration binary: it wires config, the browser
// adapter, the cursor engine, and the recorder together against a single
// target URL. It exists so the engine has a runnable caller, not as a
// required part of the engine's surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"humancursor/internal/browser"
	"humancursor/internal/config"
	"humancursor/internal/cursor"
	"humancursor/internal/recorder"
	"humancursor/internal/stealth"
	"humancursor/internal/storage"
)

const (
	AppName    = "cursorctl"
	AppVersion = "0.1.0"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "Path to config file")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	headless   = flag.Bool("headless", false, "Run in headless mode")
	url        = flag.String("url", "https://example.com", "URL to open and move the cursor around on")
)

// App holds all application dependencies.
type App struct {
	config   *config.Config
	logger   zerolog.Logger
	db       *storage.Database
	browser  *browser.Browser
	timing   *stealth.TimingController
	recorder *recorder.Recorder
}

func main() {
	flag.Parse()
	printBanner()

	args := flag.Args()
	command := "demo"
	if len(args) > 0 {
		command = args[0]
	}

	app, err := NewApp()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer app.Cleanup()

	app.setupSignalHandler()

	var cmdErr error
	switch command {
	case "demo":
		cmdErr = app.cmdDemo()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		app.logger.Error().Err(cmdErr).Msg("command failed")
		os.Exit(1)
	}
}

// NewApp loads config, sets up logging, opens storage, and prepares the
// ambient stealth helpers. The browser itself is started lazily by
// initBrowser since not every command needs one.
func NewApp() (*App, error) {
	app := &App{}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.config = cfg

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *headless {
		cfg.Browser.Headless = true
	}

	app.setupLogging()
	app.logger.Info().Str("version", AppVersion).Msg("starting application")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Recorder.Persist {
		db, err := storage.Open(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
	}

	app.timing = stealth.NewTimingController(app.logger)
	app.recorder = recorder.New()

	app.logger.Info().Msg("application initialized")
	return app, nil
}

func (app *App) initBrowser() error {
	if app.browser != nil {
		return nil
	}

	b, err := browser.NewBrowser(&app.config.Browser, app.timing, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	app.browser = b
	return nil
}

func (app *App) setupLogging() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	level := zerolog.InfoLevel
	switch app.config.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	app.logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = app.logger
}

func (app *App) setupSignalHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		app.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		app.Cleanup()
		os.Exit(0)
	}()
}

// Cleanup releases all resources, persisting the recording first if
// configured to do so.
func (app *App) Cleanup() {
	app.logger.Info().Msg("cleaning up resources")

	if app.recorder != nil && app.config.Recorder.Persist && app.db != nil {
		items := app.recorder.Items()
		if err := app.db.SaveRecording(app.config.Recorder.SessionID, items); err != nil {
			app.logger.Warn().Err(err).Msg("failed to persist recording")
		}
	}

	if app.browser != nil {
		app.browser.Close()
	}
	if app.db != nil {
		app.db.Close()
	}
}

// cmdDemo navigates to the configured URL and runs the cursor engine
// through a move, a click, a hover over a random element, and an optional
// idle-jitter pause, recording the move and the click.
func (app *App) cmdDemo() error {
	app.logger.Info().Msg("=== Demo Command ===")

	if err := app.initBrowser(); err != nil {
		return err
	}

	page, err := app.browser.GetPage()
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	if err := app.browser.Navigate(page, *url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}

	sink := browser.NewPageSink(page)
	cur, err := cursor.NewCursor(sink, cursor.WithSteady(app.config.Motion.Steady))
	if err != nil {
		return fmt.Errorf("failed to create cursor: %w", err)
	}
	defer cur.Close()

	ctx := context.Background()

	dest := cursor.AbsoluteTarget(cursor.Point{
		X: float64(app.config.Browser.ViewportWidth) / 2,
		Y: float64(app.config.Browser.ViewportHeight) / 2,
	})
	if err := cur.MoveTo(ctx, dest, cursor.AutoDuration()); err != nil {
		return fmt.Errorf("move failed: %w", err)
	}
	if app.config.Recorder.Enabled {
		app.recorder.Record(recorder.Move(
			int(app.config.Browser.ViewportWidth)/2,
			int(app.config.Browser.ViewportHeight)/2,
		))
	}

	if err := cur.Click(ctx, dest, 1, 80*time.Millisecond, cursor.AutoDuration(), cursor.ButtonLeft); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	if app.config.Recorder.Enabled {
		app.recorder.Record(recorder.Click(
			int(app.config.Browser.ViewportWidth)/2,
			int(app.config.Browser.ViewportHeight)/2,
			1,
		))
	}

	if hoverTarget, err := app.browser.FindRandomVisibleElement(page, "a, button, img, [role='button'], .hoverable"); err != nil {
		app.logger.Debug().Err(err).Msg("no hoverable element found")
	} else if err := stealth.HoverRandomElement(ctx, hoverTarget, cur, func(el *rod.Element) cursor.ElementHandle {
		return browser.NewRodElement(el)
	}, app.logger); err != nil {
		app.logger.Warn().Err(err).Msg("random hover failed")
	}

	if app.config.Motion.IdleJitterEnabled {
		jitterCtx, cancel := context.WithTimeout(ctx, time.Duration(app.config.Motion.IdleJitterInterval)*time.Second)
		defer cancel()
		if err := cur.IdleJitter(jitterCtx, time.Duration(app.config.Motion.IdleJitterInterval)*time.Second, app.config.Motion.IdleJitterIntensity); err != nil && jitterCtx.Err() == nil {
			app.logger.Warn().Err(err).Msg("idle jitter failed")
		}
	}

	app.logger.Info().Int("items", len(app.recorder.Items())).Msg("demo completed")
	return nil
}

func printBanner() {
	fmt.Println(`
╔═══════════════════════════════════════════════════════════════╗
║              cursorctl - ` + AppVersion + ` demo driver                    ║
║                                                                 ║
║  Drives a humanized cursor trajectory engine against a page.    ║
╚═══════════════════════════════════════════════════════════════╝
`)
}

func printUsage() {
	fmt.Println(`
Usage: cursorctl [options] <command>

Commands:
  demo      Navigate to -url and run move/click/idle-jitter (default)
  help      Show this help message

Options:
  -config string     Path to config file (default "./config/config.yaml")
  -log-level string  Log level: debug, info, warn, error
  -headless          Run browser in headless mode
  -url string        URL to demo against (default "https://example.com")
`)
}
