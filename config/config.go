package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/litedoc/litedoc/constants/lipgloss"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// MarkerConfig holds the recognized annotation tokens. The set is fixed
// for the duration of one run and read-only after loading.
type MarkerConfig struct {
	Doc             string   `mapstructure:"doc"`
	Language        string   `mapstructure:"language"`
	Hide            string   `mapstructure:"hide"`
	Show            string   `mapstructure:"show"`
	NoiseAttributes []string `mapstructure:"noise_attributes"`
	SkipComments    []string `mapstructure:"skip_comments"`
}

// FormatConfig describes the output documentation format.
type FormatConfig struct {
	Extension   string `mapstructure:"extension"`
	Fence       string `mapstructure:"fence"`
	CalloutCode string `mapstructure:"callout_code"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version          string          `mapstructure:"version"`
	InputRoot        string          `mapstructure:"input"`
	OutputRoot       string          `mapstructure:"output"`
	HostLanguage     string          `mapstructure:"host_language"`
	SourceExtensions []string        `mapstructure:"source_extensions"`
	HideScope        string          `mapstructure:"hide_scope"`
	Workers          int             `mapstructure:"workers"`
	Symbols          map[string]bool `mapstructure:"symbols"`
	Markers          MarkerConfig    `mapstructure:"markers"`
	Format           FormatConfig    `mapstructure:"format"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:          "1.0.0",
	InputRoot:        ".",
	OutputRoot:       "docs",
	HostLanguage:     "csharp",
	SourceExtensions: []string{".cs"},
	HideScope:        "block",
	Workers:          4,
	Symbols:          map[string]bool{},
	Markers: MarkerConfig{
		Doc:             "md",
		Language:        "source",
		Hide:            "// hide",
		Show:            "// show",
		NoiseAttributes: []string{"Fact", "Theory", "Test", "IntegrationFact", "Benchmark"},
		SkipComments:    []string{"// skip", "// not-run", "// compile-error"},
	},
	Format: FormatConfig{
		Extension:   ".md",
		Fence:       "```",
		CalloutCode: "(%d)",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if t := GetConfigFileType(cfgFile); t != "" {
			viper.SetConfigType(t)
		}
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(2)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("litedoc-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// Continue with defaults when no file is present
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(2)
	}

	return config
}

// Validate checks the parts of the configuration that must hold before
// any file processing starts. Failures here abort the whole run.
func (c *Config) Validate() error {
	info, err := os.Stat(c.InputRoot)
	if err != nil {
		return models.ConfigErrorf("input root %q is not readable: %v", c.InputRoot, err)
	}
	if !info.IsDir() {
		return models.ConfigErrorf("input root %q is not a directory", c.InputRoot)
	}
	if c.OutputRoot == "" {
		return models.ConfigErrorf("output root is empty")
	}
	switch c.HideScope {
	case "block", "explicit":
	default:
		return models.ConfigErrorf("hide_scope must be 'block' or 'explicit', got %q", c.HideScope)
	}
	if c.Workers < 1 {
		return models.ConfigErrorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Markers.Doc == "" {
		return models.ConfigErrorf("markers.doc must not be empty")
	}
	if c.Markers.Hide == c.Markers.Show {
		return models.ConfigErrorf("markers.hide and markers.show must differ")
	}
	if !strings.HasPrefix(c.Format.Extension, ".") {
		return models.ConfigErrorf("format.extension must start with '.', got %q", c.Format.Extension)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("input", DefaultConfig.InputRoot)
	viper.SetDefault("output", DefaultConfig.OutputRoot)
	viper.SetDefault("host_language", DefaultConfig.HostLanguage)
	viper.SetDefault("source_extensions", DefaultConfig.SourceExtensions)
	viper.SetDefault("hide_scope", DefaultConfig.HideScope)
	viper.SetDefault("workers", DefaultConfig.Workers)
	viper.SetDefault("symbols", DefaultConfig.Symbols)
	viper.SetDefault("markers.doc", DefaultConfig.Markers.Doc)
	viper.SetDefault("markers.language", DefaultConfig.Markers.Language)
	viper.SetDefault("markers.hide", DefaultConfig.Markers.Hide)
	viper.SetDefault("markers.show", DefaultConfig.Markers.Show)
	viper.SetDefault("markers.noise_attributes", DefaultConfig.Markers.NoiseAttributes)
	viper.SetDefault("markers.skip_comments", DefaultConfig.Markers.SkipComments)
	viper.SetDefault("format.extension", DefaultConfig.Format.Extension)
	viper.SetDefault("format.fence", DefaultConfig.Format.Fence)
	viper.SetDefault("format.callout_code", DefaultConfig.Format.CalloutCode)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("input", "LITEDOC_INPUT")
	_ = viper.BindEnv("output", "LITEDOC_OUTPUT")
	_ = viper.BindEnv("host_language", "LITEDOC_HOST_LANGUAGE")
	_ = viper.BindEnv("hide_scope", "LITEDOC_HIDE_SCOPE")
	_ = viper.BindEnv("workers", "LITEDOC_WORKERS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("host_language", rootCmd.PersistentFlags().Lookup("host_language"))
	_ = viper.BindPFlag("hide_scope", rootCmd.PersistentFlags().Lookup("hide_scope"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("source_extensions", rootCmd.PersistentFlags().Lookup("source_extensions"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().StringP("input", "i", DefaultConfig.InputRoot, "Root directory containing annotated source files.")
	rootCmd.PersistentFlags().StringP("output", "o", DefaultConfig.OutputRoot, "Root directory the documentation tree is written under.")
	rootCmd.PersistentFlags().String("host_language", DefaultConfig.HostLanguage, "Default language tag for code blocks without an explicit [source:...] tag.")
	rootCmd.PersistentFlags().String("hide_scope", DefaultConfig.HideScope, "How an unresumed hide marker terminates: 'block' (end of enclosing brace block) or 'explicit' (show marker required).")
	rootCmd.PersistentFlags().Int("workers", DefaultConfig.Workers, "Number of files processed concurrently.")
	rootCmd.PersistentFlags().StringSlice("source_extensions", DefaultConfig.SourceExtensions, "File extensions considered source input.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
