package cmd

import (
	"fmt"
	"os"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/constants/lipgloss"
	"github.com/litedoc/litedoc/extractor"
	"github.com/spf13/cobra"
)

// RootDependencies holds the objects every subcommand needs.
type RootDependencies struct {
	Config  *config.Config
	Cwd     string
	Emitter *extractor.Emitter
}

var rootCmd = &cobra.Command{
	Use:   "litedoc",
	Short: "Extract literate documentation from annotated source trees.",
	Long: `litedoc walks a tree of annotated source files, separates prose
documentation blocks from executable code, applies conditional-compilation,
visibility and callout rules, and emits a mirrored tree of markdown documents.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and wires the engine.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(2)
	}

	cfg := config.LoadConfigs(rootCmd, cwd)

	return &RootDependencies{
		Config:  cfg,
		Cwd:     cwd,
		Emitter: extractor.NewEmitter(cfg),
	}
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
