package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/litedoc/litedoc/constants/lipgloss"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the full extraction and write the documentation tree.",
	Long: `The 'extract' subcommand processes every qualifying source file under the
input root and writes one markdown document per file containing at least one
documentation block, mirroring the input directory structure under the output
root. The output tree is fully regenerated on every run.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleExtractCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func handleExtractCommand(rootDependencies *RootDependencies) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithRemoveWhenDone(true)
	spinnerRun, _ := spinner.Start("Extracting documentation...")

	report, err := rootDependencies.Emitter.Run(ctx)

	spinnerRun.Stop()
	fmt.Print("\r")

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

// printSummary renders the run outcome: counts, warnings, and the list
// of files skipped on structural errors.
func printSummary(report *models.RunReport) {
	summary := fmt.Sprintf("Documents written: %d\nFiles without documentation: %d\nFiles skipped on errors: %d\nWarnings: %d",
		report.Written(), report.NoDocs(), report.Errors(), report.WarningCount())
	fmt.Println(lipgloss.BoxStyle.Render(summary))

	for _, f := range report.Files() {
		for _, w := range f.Warnings {
			fmt.Println(lipgloss.Yellow.Render("warning: " + w.String()))
		}
		if f.Status == models.StatusError && f.Err != nil {
			fmt.Println(lipgloss.Red.Render("error: " + f.Err.Error()))
		}
	}

	if report.Errors() == 0 && report.WarningCount() == 0 {
		fmt.Println(lipgloss.Green.Render("✔️ Extraction completed without issues."))
	}
}
