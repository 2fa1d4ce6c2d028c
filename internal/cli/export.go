package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/export"
	"github.com/dguo/make-a-readme/internal/view"
)

func newExportCommand(load func() (config.Config, error), stderr io.Writer) *cobra.Command {
	var dir, templateDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the page and the README template as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.ExportDir = dir
			}
			if cmd.Flags().Changed("template-dir") {
				cfg.TemplateDir = templateDir
			}
			a, err := newApp(cfg, stderr)
			if err != nil {
				return err
			}
			ctx := view.LoggingContext(cmd.Context(), a.logger)
			return export.Export(ctx, cfg.ExportDir, a.site, a.home, a.readme)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from MAKEAREADME_EXPORT_DIR)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "render templates from this directory instead of the embedded ones")
	return cmd
}
