package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/frontdesk/internal/catalog"
	"github.com/MikeSquared-Agency/frontdesk/internal/config"
	"github.com/MikeSquared-Agency/frontdesk/internal/store"
)

type rootOptions struct {
	cfg     config.Config
	verbose bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:           "deskctl",
		Short:         "Query and inspect the frontdesk answer tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfg.KnowledgeBasePath, "kb", opts.cfg.KnowledgeBasePath, "FAQ table file (.json, .yaml)")
	flags.StringVar(&opts.cfg.DepartmentsPath, "departments", opts.cfg.DepartmentsPath, "department table file (.json, .yaml)")
	flags.StringVar(&opts.cfg.DatabaseURL, "database-url", opts.cfg.DatabaseURL, "read tables from Postgres instead of files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newAskCmd(opts), newTablesCmd(opts), newImportCmd(opts))
	return cmd
}

// loadCatalog mirrors the server: Postgres when a database URL is given,
// files otherwise, empty tables on failure.
func (o *rootOptions) loadCatalog(ctx context.Context) (*catalog.KnowledgeBase, *catalog.Departments) {
	if o.cfg.DatabaseURL == "" {
		src := catalog.FileSource{KnowledgeBasePath: o.cfg.KnowledgeBasePath, DepartmentsPath: o.cfg.DepartmentsPath}
		return catalog.Load(ctx, src, slog.Default())
	}
	db, err := store.New(ctx, o.cfg.DatabaseURL)
	if err != nil {
		slog.Warn("catalog database unavailable, using empty tables", "error", err)
		return catalog.NewKnowledgeBase(nil), catalog.NewDepartments(nil)
	}
	defer db.Close()
	return catalog.Load(ctx, db, slog.Default())
}
