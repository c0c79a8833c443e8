/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toothbrush/readme-migrate/internal/termfmt"
	"github.com/toothbrush/readme-migrate/migrate"
)

var migrateUsage = strings.TrimSpace(`
Copy the title and body of every old slug in the mapping file onto its new slug.  Destination pages
have to exist already, run 'create' first if they don't.  With --dry-run every page is still read,
but nothing is written.
`)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy docs from their old slugs to their new slugs",
	Long:  migrateUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		mappings, err := migrate.LoadMappings(MappingFile)
		if err != nil {
			return err
		}

		s, err := newSession(migrateConfig())
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.Close())
		}()

		return runMigrate(ctx, s.Migrator, mappings, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context, m *migrate.Migrator, mappings []migrate.PageMapping, out io.Writer) error {
	fmt.Fprintf(out, "%s\n\n", termfmt.Pending.Sprint("⏳ Attempting to migrate docs... ⏳"))

	report, err := m.MigrateAll(ctx, mappings)
	if err != nil {
		fmt.Fprintf(out, "%s\n\n", termfmt.Failure.Sprint("🚨 Error migrating docs! 🚨"))
		return err
	}

	for _, outcome := range report.Outcomes {
		if outcome.Action == migrate.ActionDryRun {
			fmt.Fprintf(out, "🎭 %s\n", outcome.Message)
			continue
		}
		fmt.Fprintln(out, outcome.Message)
	}

	fmt.Fprintf(out, "\n%s\n", termfmt.Success.Sprintf("🚀 Successfully migrated %d docs! 🚀", len(report.Updated())))
	fmt.Fprintf(out, "%s\n", termfmt.Muted.Sprintf("%d mapping entries processed.", report.Processed()))

	return nil
}
