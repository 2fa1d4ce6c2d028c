// Package cli is the makeareadme command line: serve the page over HTTP or
// export it as static files.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dguo/make-a-readme/internal/assets"
	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/pages"
	"github.com/dguo/make-a-readme/internal/site"
)

const serviceName = "makeareadme"

// ErrWatchNeedsTemplateDir is returned when --watch is used without a
// template directory on disk.
var ErrWatchNeedsTemplateDir = errors.New("--watch needs --template-dir")

// app is everything a command needs to render the page.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	site   *site.Site
	home   pages.HomePage
	readme content.Readme
}

// NewRootCommand returns the makeareadme command with its subcommands.
// Configuration is read from the environment through load, and logs are
// written to stderr.
func NewRootCommand(load func() (config.Config, error), stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Serve or export the Make a README page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(load, stderr))
	root.AddCommand(newExportCommand(load, stderr))
	return root
}

// Execute runs the root command with the process environment and arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand(config.Load, os.Stderr).ExecuteContext(ctx)
}

func newApp(cfg config.Config, stderr io.Writer) (*app, error) {
	logger, err := newLogger(stderr, cfg)
	if err != nil {
		return nil, err
	}
	var templates fs.FS = assets.Templates
	if cfg.TemplateDir != "" {
		templates = os.DirFS(cfg.TemplateDir)
	}
	guide, err := content.LoadGuide(assets.Content, assets.GuidePath)
	if err != nil {
		return nil, err
	}
	readme, err := content.LoadReadme(assets.Content, assets.ReadmePath)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		site:   site.New(templates, cfg.Site),
		home:   pages.NewHomePage(cfg.Site, guide, readme),
		readme: readme,
	}, nil
}

func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, cfg.LogFormat)
	}
	return slog.New(handler).With("service", serviceName), nil
}
