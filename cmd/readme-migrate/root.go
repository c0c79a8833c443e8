/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/toothbrush/readme-migrate/internal/logging"
	"github.com/toothbrush/readme-migrate/internal/termfmt"
)

const defaultConfigPath = "~/.config/readme-migrate.yaml"

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	EnvFile      string
	Debug        bool

	CurrentAPIKey  string
	NewAPIKey      string
	CurrentVersion string
	NewVersion     string
	DryRun         bool

	MappingFile string
	APIURL      string
	Workers     int
	MetricsFile string
	WithVCR     bool

	LogLevel  string
	LogFormat string
	NoColor   bool

	ParsedConfig YamlConfig

	Logger = zerolog.Nop()
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "readme-migrate",
	Short: "Copy ReadMe docs between versions and projects",
	Long: `
Moving documentation to a new ReadMe version, or a new project altogether?  Write down which old
slug becomes which new slug, run 'create' to make sure every destination page exists, then run
'migrate' to copy titles and bodies across.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("readme-migrate: failed to initialise config: %w", err)
		}

		level := LogLevel
		if Debug {
			level = "debug"
		}
		logger, err := logging.New(logging.Config{
			Level:   level,
			Format:  logging.Format(LogFormat),
			Output:  os.Stderr,
			NoColor: NoColor,
		})
		if err != nil {
			return fmt.Errorf("readme-migrate: %w", err)
		}
		Logger = logger

		termfmt.SetEnabled(!NoColor && isTerminal(os.Stdout))

		Logger.Debug().Str("config", ConfigActual).Msg("configuration resolved")
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&Config, "config", "", "config file location (default: "+defaultConfigPath+", respects README_MIGRATE_CONFIG)")
	flags.StringVar(&EnvFile, "env-file", ".env", "dotenv file to read credentials from, if it exists")
	flags.BoolVar(&Debug, "debug", false, "display debug output, same as --log-level debug")

	flags.StringVar(&CurrentAPIKey, "current-api-key", "", "API key of the project holding the existing docs (CURRENT_README_API_KEY)")
	flags.StringVar(&NewAPIKey, "new-api-key", "", "API key of the destination project, defaults to the current key (NEW_README_API_KEY)")
	flags.StringVar(&CurrentVersion, "current-version", "", "version holding the existing docs (CURRENT_VERSION)")
	flags.StringVar(&NewVersion, "new-version", "", "destination version, defaults to the current version (NEW_VERSION)")
	flags.BoolVar(&DryRun, "dry-run", false, "read everything, write nothing (DRY_RUN)")

	flags.StringVar(&MappingFile, "mapping", "data.json", "JSON or YAML list of {oldSlug, newSlug} pairs")
	flags.StringVar(&APIURL, "api-url", "", "ReadMe API root (default: https://dash.readme.com/api/v1)")
	flags.IntVar(&Workers, "workers", 0, "maximum mapping entries processed at once, 0 for no limit")
	flags.StringVar(&MetricsFile, "metrics-file", "", "write Prometheus counters to this textfile when done")
	flags.BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay API responses")

	flags.StringVar(&LogLevel, "log-level", "info", "minimum log level: debug, info, warn or error")
	flags.StringVar(&LogFormat, "log-format", string(logging.FormatConsole), "log format: console or json")
	flags.BoolVar(&NoColor, "no-color", false, "disable colours in output")
}

func initializeConfig(cmd *cobra.Command) error {
	// An explicitly requested config file has to exist; the default one is optional.
	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		if envConfig := os.Getenv("README_MIGRATE_CONFIG"); envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			Config = defaultConfigPath
		}
	}

	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("readme-migrate: unable to expand homedir: %w", err)
	}
	ConfigActual = config

	envFile, err := homedir.Expand(EnvFile)
	if err != nil {
		return fmt.Errorf("readme-migrate: unable to expand homedir: %w", err)
	}

	// Environment first: every layer only fills flags that are still unchanged.
	if err := bindEnv(cmd, envFile); err != nil {
		return err
	}

	ParsedConfig, err = readYamlConfig(ConfigActual, explicit)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("readme-migrate: failed to bind flags: %w", err)
	}

	return nil
}

func readYamlConfig(path string, required bool) (YamlConfig, error) {
	var parsed YamlConfig

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if !required {
			return parsed, nil
		}
		return parsed, fmt.Errorf("readme-migrate: specified config file %s does not exist, override with --config: %w", path, err)
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return parsed, fmt.Errorf("readme-migrate: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &parsed); err != nil {
		return parsed, fmt.Errorf("readme-migrate: issue parsing config file: %w", err)
	}

	return parsed, nil
}

type YamlConfig struct {
	DryRun  *bool `yaml:"dry-run"`
	WithVCR *bool `yaml:"with-vcr"`
	NoColor *bool `yaml:"no-color"`
	Workers *int  `yaml:"workers"`

	CurrentAPIKey  string `yaml:"current-api-key"`
	NewAPIKey      string `yaml:"new-api-key"`
	CurrentVersion string `yaml:"current-version"`
	NewVersion     string `yaml:"new-version"`
	Mapping        string `yaml:"mapping"`
	APIURL         string `yaml:"api-url"`
	MetricsFile    string `yaml:"metrics-file"`
	LogLevel       string `yaml:"log-level"`
	LogFormat      string `yaml:"log-format"`
}

// Bind each cobra flag to its value from the config file, unless something with higher
// precedence already set it.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("readme-migrate: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// e.g. `version` doesn't care about every key in the file.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		var err error
		switch field.Kind() {
		case reflect.Ptr:
			switch p := field.Value().(type) {
			case *bool:
				if p != nil {
					err = cmd.Flags().Set(key, fmt.Sprintf("%v", *p))
				}
			case *int:
				if p != nil {
					err = cmd.Flags().Set(key, fmt.Sprintf("%d", *p))
				}
			default:
				return fmt.Errorf("readme-migrate: found unrecognised field: %+v", field)
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("readme-migrate: found unrecognised field: %+v", field)
			}
			if s != "" {
				err = cmd.Flags().Set(key, s)
			}

		default:
			return fmt.Errorf("readme-migrate: found unrecognised field: %+v", field)
		}

		if err != nil {
			return fmt.Errorf("readme-migrate: config key %s: %w", key, err)
		}
	}

	return nil
}

// Historical variable names, still honoured alongside the README_MIGRATE_ prefixed ones.
var legacyEnvNames = map[string]string{
	"current-api-key": "CURRENT_README_API_KEY",
	"new-api-key":     "NEW_README_API_KEY",
	"current-version": "CURRENT_VERSION",
	"new-version":     "NEW_VERSION",
	"dry-run":         "DRY_RUN",
}

// These pick the files everything else is read from.
var notFromEnv = map[string]bool{
	"config":   true,
	"env-file": true,
}

func envNames(flagName string) []string {
	names := []string{}
	if legacy, ok := legacyEnvNames[flagName]; ok {
		names = append(names, legacy)
	}
	return append(names, "README_MIGRATE_"+strings.ToUpper(strings.ReplaceAll(flagName, "-", "_")))
}

// bindEnv fills unchanged flags from the environment, then from the dotenv file at envFile (when
// it exists).
func bindEnv(cmd *cobra.Command, envFile string) error {
	env := viper.New()
	env.AutomaticEnv()

	dotenv := viper.New()
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			dotenv.SetConfigFile(envFile)
			dotenv.SetConfigType("env")
			if err := dotenv.ReadInConfig(); err != nil {
				return fmt.Errorf("readme-migrate: issue parsing env file %s: %w", envFile, err)
			}
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || notFromEnv[f.Name] {
			return
		}

		for _, layer := range []*viper.Viper{env, dotenv} {
			for _, name := range envNames(f.Name) {
				// viper keys are case-insensitive and stored lower-case
				key := strings.ToLower(name)
				if !layer.IsSet(key) {
					continue
				}
				if err := cmd.Flags().Set(f.Name, layer.GetString(key)); err != nil {
					bindErr = fmt.Errorf("readme-migrate: %s: %w", name, err)
				}
				return
			}
		}
	})

	return bindErr
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
