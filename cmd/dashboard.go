package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chippeters/fedscope/internal/export"
	"github.com/chippeters/fedscope/internal/loader"
	"github.com/chippeters/fedscope/internal/model"
	"github.com/chippeters/fedscope/internal/summary"
)

var (
	dashboardInput string
	dashboardOut   string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Export the embedded dashboard payload (data.js)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		input := cfg.Input.Path
		if dashboardInput != "" {
			input = dashboardInput
		}
		outFile := cfg.Dashboard.OutputFile
		if dashboardOut != "" {
			outFile = dashboardOut
		}

		records, err := loader.Load(ctx, input, model.DashboardSchema(), model.DashboardPayBands())
		if err != nil {
			return eris.Wrap(err, "dashboard")
		}

		payload := summary.BuildDashboard(records)

		if err := export.WriteDashboard(payload, outFile); err != nil {
			return eris.Wrap(err, "dashboard")
		}

		zap.L().Info("dashboard complete",
			zap.String("input", input),
			zap.String("output", outFile),
			zap.Int64("total_employees", payload.Overall.TotalEmployees),
			zap.String("snapshot", payload.Overall.Snapshot),
		)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardInput, "input", "", "path to the pipe-delimited snapshot (overrides config)")
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "", "output file for the embedded payload (overrides config)")
	rootCmd.AddCommand(dashboardCmd)
}
