/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var configUsage = strings.TrimSpace(`
Settings come from flags, then the environment, then the dotenv file, then the YAML config file.
Use these commands to check which values won, and which config file was read.
`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved settings",
	Long:  configUsage,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
