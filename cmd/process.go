package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chippeters/fedscope/internal/export"
	"github.com/chippeters/fedscope/internal/loader"
	"github.com/chippeters/fedscope/internal/model"
	"github.com/chippeters/fedscope/internal/summary"
)

var (
	processInput string
	processOut   string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Export full CSV summary tables from the snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		input := cfg.Input.Path
		if processInput != "" {
			input = processInput
		}
		outDir := cfg.Process.OutputDir
		if processOut != "" {
			outDir = processOut
		}

		records, err := loader.Load(ctx, input, model.FullSchema(), model.DetailPayBands())
		if err != nil {
			return eris.Wrap(err, "process")
		}

		detail := summary.BuildDetail(records)

		if err := export.WriteDetail(detail, outDir); err != nil {
			return eris.Wrap(err, "process")
		}

		printOverall(detail.Overall)

		zap.L().Info("process complete",
			zap.String("input", input),
			zap.String("output_dir", outDir),
			zap.Int("rows", len(records)),
		)
		return nil
	},
}

// printOverall reports the headline statistics to the operator.
func printOverall(o summary.OverallStats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stdout, "total employees:  %d\n", o.TotalEmployees)
	p.Fprintf(os.Stdout, "total agencies:   %d\n", o.TotalAgencies)
	p.Fprintf(os.Stdout, "total states:     %d\n", o.TotalStates)
	if o.AvgSalary != nil {
		p.Fprintf(os.Stdout, "average salary:   $%.2f\n", *o.AvgSalary)
	}
	if o.MedianSalary != nil {
		p.Fprintf(os.Stdout, "median salary:    $%.2f\n", *o.MedianSalary)
	}
	if o.AvgTenure != nil {
		p.Fprintf(os.Stdout, "average tenure:   %.2f years\n", *o.AvgTenure)
	}
	if o.PctRedacted != nil {
		p.Fprintf(os.Stdout, "redacted rows:    %.2f%%\n", *o.PctRedacted)
	}
	p.Fprintf(os.Stdout, "snapshot:         %d\n", o.SnapshotDate)
}

func init() {
	processCmd.Flags().StringVar(&processInput, "input", "", "path to the pipe-delimited snapshot (overrides config)")
	processCmd.Flags().StringVar(&processOut, "out", "", "output directory for the CSV tables (overrides config)")
	rootCmd.AddCommand(processCmd)
}
