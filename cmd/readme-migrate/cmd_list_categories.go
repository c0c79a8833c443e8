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

	"github.com/toothbrush/readme-migrate/migrate"
)

var listCategoriesUsage = strings.TrimSpace(`
If 'create' complains there's nowhere to put placeholders, use this command to see what categories
the new version has.  Placeholders go into the first category that isn't API reference.
`)

var listCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print categories of the new version",
	Long:  listCategoriesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		s, err := newSession(migrateConfig())
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.Close())
		}()

		return runListCategories(ctx, s.Migrator, cmd.OutOrStdout())
	},
}

func init() {
	listCmd.AddCommand(listCategoriesCmd)
}

func runListCategories(ctx context.Context, m *migrate.Migrator, out io.Writer) error {
	Logger.Info().Str("version", m.Config.New.Version).Msg("listing categories")

	guide, categories, err := m.GuideCategory(ctx)
	noGuide := errors.Is(err, migrate.ErrNoGuideCategory)
	if err != nil && !noGuide {
		return err
	}

	fmt.Fprintf(out, "categories in v%s:\n", m.Config.New.Version)
	for _, category := range categories {
		note := ""
		switch {
		case category.Reference:
			note = " (reference)"
		case category.ID == guide.ID:
			note = " (placeholders go here)"
		}
		fmt.Fprintf(out, "  - %s: %s%s\n", category.ID, category.Title, note)
	}

	if noGuide {
		fmt.Fprintf(out, "\nNo guides category in v%s, add one before running 'create'.\n", m.Config.New.Version)
	}

	return nil
}
