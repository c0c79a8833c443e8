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

var createUsage = strings.TrimSpace(`
Make sure every new slug in the mapping file exists in the new version.  Missing pages are created
as placeholders in the first guides category; pages that already exist are left alone.
`)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create placeholder pages for missing new slugs",
	Long:  createUsage,
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

		return runCreate(ctx, s.Migrator, mappings, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(ctx context.Context, m *migrate.Migrator, mappings []migrate.PageMapping, out io.Writer) error {
	fmt.Fprintf(out, "%s\n\n", termfmt.Pending.Sprint("⏳ Attempting to create placeholder pages... ⏳"))

	report, err := m.CreatePlaceholders(ctx, mappings)
	if err != nil {
		fmt.Fprintf(out, "%s\n\n", termfmt.Failure.Sprint("🚨 Error creating placeholder pages! 🚨"))
		return err
	}

	fmt.Fprintln(out, strings.Join(report.Lines(), "\n"))
	fmt.Fprintf(out, "\n%s\n", termfmt.Success.Sprint("✨ Finished backfilling placeholder pages ✨"))

	return nil
}
