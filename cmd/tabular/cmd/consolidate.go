package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/tabular"
	"github.com/agentstation/tabular/internal/cmd/output"
	"github.com/agentstation/tabular/internal/encode"
	"github.com/agentstation/tabular/internal/ingest"
	"github.com/agentstation/tabular/pkg/enhance"
	"github.com/agentstation/tabular/pkg/logging"
)

var (
	reportPath string
	useGemini  bool
)

// consolidateCmd merges input files into one consolidated report.
var consolidateCmd = &cobra.Command{
	Use:   "consolidate <file>...",
	Short: "Merge tabular files into one consolidated table",
	Long: `Consolidate ingests each input file as one source table, reconciles
column names across sources, merges rows describing the same entity, and
prints or writes the consolidated result.

With --enhance and a GEMINI_API_KEY, the structural summary of the result
is offered to Gemini for improved headers and a narrative summary; on any
failure the deterministic result is used unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConsolidate,
}

func init() {
	consolidateCmd.Flags().StringVarP(&reportPath, "write", "w", "", "write a report file (format from extension: .csv, .json, .yaml)")
	consolidateCmd.Flags().BoolVar(&useGemini, "enhance", false, "offer the result to Gemini for enrichment")
	rootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	sources, err := ingest.Files(args...)
	if err != nil {
		return err
	}

	opts := []tabular.Option{}
	if useGemini {
		apiKey := viper.GetString("GEMINI_API_KEY")
		enhancer, err := enhance.NewGemini(cmd.Context(), apiKey, viper.GetString("GEMINI_MODEL"))
		if err != nil {
			logging.Warn().Err(err).Msg("Enrichment unavailable, continuing without it")
		} else {
			opts = append(opts, tabular.WithEnhancer(enhancer))
		}
	}

	client, err := tabular.New(opts...)
	if err != nil {
		return err
	}

	result, err := client.Consolidate(cmd.Context(), sources)
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := encode.WriteFile(reportPath, result); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Report written to", reportPath)
	}

	formatter := output.NewFormatter(output.DetectFormat(viper.GetString("output")))
	return formatter.Format(os.Stdout, result)
}
