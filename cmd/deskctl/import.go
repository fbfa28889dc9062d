package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/frontdesk/internal/catalog"
	"github.com/MikeSquared-Agency/frontdesk/internal/store"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Replace the Postgres tables with the contents of the table files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.DatabaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}
			ctx := cmd.Context()

			src := catalog.FileSource{KnowledgeBasePath: opts.cfg.KnowledgeBasePath, DepartmentsPath: opts.cfg.DepartmentsPath}
			entries, err := src.KnowledgeEntries(ctx)
			if err != nil {
				return err
			}
			departments, err := src.DepartmentList(ctx)
			if err != nil {
				return err
			}

			db, err := store.New(ctx, opts.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				return err
			}
			// Normalise through the catalog so duplicates and blanks match what lookups see.
			kb := catalog.NewKnowledgeBase(entries)
			depts := catalog.NewDepartments(departments)
			if err := db.ReplaceCatalog(ctx, kb.Entries(), depts.List()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d FAQ entries and %d departments\n", kb.Len(), depts.Len())
			return nil
		},
	}
}
