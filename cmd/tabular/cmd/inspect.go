package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/tabular"
	"github.com/agentstation/tabular/internal/cmd/output"
	"github.com/agentstation/tabular/internal/ingest"
)

// inspectCmd analyzes input schemas without merging.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Analyze column structure across input files",
	Long: `Inspect reports how the input files' columns relate: which columns
recur across sources, which group as likely synonyms, and which source
pairs share enough columns to be joinable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	sources, err := ingest.Files(args...)
	if err != nil {
		return err
	}

	client, err := tabular.New()
	if err != nil {
		return err
	}

	analysis, err := client.Analyze(sources)
	if err != nil {
		return err
	}

	format := output.DetectFormat(viper.GetString("output"))
	if format == output.FormatTable {
		// Schema analysis has no natural table shape; default to JSON.
		format = output.FormatJSON
	}
	return output.NewFormatter(format).Format(os.Stdout, analysis)
}
