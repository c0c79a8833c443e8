/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.  API keys are
never printed in full.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		writeConfig(cmd.OutOrStdout(), resolvedSettings())
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}

func resolvedSettings() map[string]string {
	return map[string]string{
		"config":          ConfigActual,
		"env-file":        EnvFile,
		"debug":           fmt.Sprintf("%v", Debug),
		"current-api-key": redact(CurrentAPIKey),
		"new-api-key":     redact(NewAPIKey),
		"current-version": CurrentVersion,
		"new-version":     NewVersion,
		"dry-run":         fmt.Sprintf("%v", DryRun),
		"mapping":         MappingFile,
		"api-url":         APIURL,
		"workers":         fmt.Sprintf("%d", Workers),
		"metrics-file":    MetricsFile,
		"with-vcr":        fmt.Sprintf("%v", WithVCR),
		"log-level":       LogLevel,
		"log-format":      LogFormat,
		"no-color":        fmt.Sprintf("%v", NoColor),
	}
}

func writeConfig(out io.Writer, settings map[string]string) {
	fmt.Fprintf(out, "Dump current config state:\n\n")

	keys := maps.Keys(settings)
	slices.Sort(keys)
	for _, key := range keys {
		value := settings[key]
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(out, "  %s: %s\n", key, value)
	}
}

// redact keeps just enough of a key to tell two apart.
func redact(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) <= 8:
		return "****"
	default:
		return "****" + key[len(key)-4:]
	}
}
