/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"github.com/spf13/cobra"
)

// listCmd groups read-only lookups against the new version.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Look around the destination version",
	Long: `
Read-only lookups against the new version (--new-api-key, --new-version), handy before running
'create'.  Nothing here writes to ReadMe.
`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
