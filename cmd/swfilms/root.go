package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/swfilms/config"
	"github.com/pthm/swfilms/internal/fetch"
	"github.com/pthm/swfilms/internal/swapi"
)

// app is the state shared by subcommands once PersistentPreRunE ran.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "swfilms",
		Short: "Star Wars films table rendered with streaming suspense boundaries",
		Long: `swfilms serves a page listing the Star Wars films from SWAPI.

The page renders immediately with loading placeholders; each placeholder
loads its own fragment once the data it waits for is available.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newFilmsCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// initialize loads the configuration and sets up logging.
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.logger = setupLogger(cfg.Logging, os.Stderr)
	return nil
}

// newFetchClient builds the SWAPI client and the fetch layer in front of it.
func (a *app) newFetchClient(suspense bool) (*fetch.Client, error) {
	api, err := swapi.NewClient(a.cfg.API.BaseURL, a.logger,
		swapi.WithTimeout(a.cfg.API.Timeout),
		swapi.WithMaxRetries(a.cfg.API.Retries),
		swapi.WithUserAgent("swfilms/"+version),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SWAPI client: %w", err)
	}

	return fetch.New(fetch.Config{
		BaseURL:     api.BaseURL(),
		Fetcher:     api.Fetch,
		Suspense:    suspense,
		TTL:         a.cfg.Cache.TTL,
		Size:        a.cfg.Cache.Size,
		Concurrency: a.cfg.Fetch.Concurrency,
		Timeout:     a.cfg.API.Timeout,
	}, a.logger)
}

// setupLogger configures the zerolog logger. Color is used only when out
// is a terminal.
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var w io.Writer = out
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isTerminal(out),
		}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
