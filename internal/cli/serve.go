package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/server"
	"github.com/dguo/make-a-readme/internal/telemetry"
	"github.com/dguo/make-a-readme/internal/watch"
)

type serveOptions struct {
	httpAddr    string
	staticDir   string
	templateDir string
	watch       bool
}

func newServeCommand(load func() (config.Config, error), stderr io.Writer) *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("http-addr") {
				cfg.HTTPAddr = opts.httpAddr
			}
			if flags.Changed("static-dir") {
				cfg.StaticDir = opts.staticDir
			}
			if flags.Changed("template-dir") {
				cfg.TemplateDir = opts.templateDir
			}
			if opts.watch && cfg.TemplateDir == "" {
				return ErrWatchNeedsTemplateDir
			}
			a, err := newApp(cfg, stderr)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), opts.watch)
		},
	}
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "", "HTTP listen address (default from MAKEAREADME_HTTP_ADDR)")
	cmd.Flags().StringVar(&opts.staticDir, "static-dir", "", "directory served under /images/ and /lava-cake/")
	cmd.Flags().StringVar(&opts.templateDir, "template-dir", "", "render templates from this directory instead of the embedded ones")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload templates from --template-dir when they change")
	return cmd
}

func (a *app) serve(ctx context.Context, watchTemplates bool) error {
	shutdown, err := telemetry.Setup(ctx, serviceName, a.cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Error("error shutting down tracing", "error", err)
		}
	}()

	srv := server.New(server.Config{
		HTTPAddr:        a.cfg.HTTPAddr,
		ShutdownTimeout: a.cfg.ShutdownTimeout,
		StaticDir:       a.cfg.StaticDir,
	}, a.site, a.home, a.readme, a.logger)

	group, ctx := errgroup.WithContext(ctx)
	if watchTemplates {
		watcher, err := watch.New(a.cfg.TemplateDir, a.site, a.logger)
		if err != nil {
			return err
		}
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	group.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	return group.Wait()
}
