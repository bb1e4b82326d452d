package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/litedoc/litedoc/constants/lipgloss"
	"github.com/litedoc/litedoc/extractor"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/litedoc/litedoc/utils"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the input tree without writing any output.",
	Long: `The 'check' subcommand runs the full extraction pipeline in dry-run mode:
it reports structural errors, configuration problems, and callout warnings
without modifying the output tree. With --preview it renders one file's
assembled document to the terminal with syntax highlighting.`,
	Run: func(cmd *cobra.Command, args []string) {
		preview, _ := cmd.Flags().GetString("preview")
		theme, _ := cmd.Flags().GetString("theme")

		rootDependencies := handleRootCommand(cmd)
		handleCheckCommand(rootDependencies, preview, theme)
	},
}

func init() {
	checkCmd.Flags().String("preview", "", "Render the assembled document for one source file (path relative to the input root).")
	checkCmd.Flags().String("theme", "dracula", "Chroma theme used by --preview.")
	rootCmd.AddCommand(checkCmd)
}

func handleCheckCommand(rootDependencies *RootDependencies, preview string, theme string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if preview != "" {
		if err := previewFile(rootDependencies, preview, theme); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			os.Exit(1)
		}
		return
	}

	rootDependencies.Emitter.DryRun = true
	report, err := rootDependencies.Emitter.Run(ctx)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		if _, ok := err.(*models.ConfigError); ok {
			os.Exit(2)
		}
		os.Exit(1)
	}

	printSummary(report)

	if report.Errors() > 0 {
		os.Exit(1)
	}
}

// previewFile runs the pipeline for a single file and renders the result.
func previewFile(rootDependencies *RootDependencies, relPath string, theme string) error {
	cfg := rootDependencies.Config

	content, err := os.ReadFile(filepath.Join(cfg.InputRoot, relPath))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	ex := extractor.NewExtractor(cfg)
	doc, warnings, err := ex.Process(filepath.ToSlash(relPath), string(content))
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Println(lipgloss.Yellow.Render("warning: " + w.String()))
	}
	if doc == nil {
		fmt.Println(lipgloss.Yellow.Render("No documentation blocks in " + relPath))
		return nil
	}

	return utils.RenderAndPrintMarkdown(doc.Render(cfg.Format.Fence), cfg.Format.Fence, cfg.HostLanguage, theme)
}
