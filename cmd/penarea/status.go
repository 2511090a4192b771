package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/calibration"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gCalibration,
		Short:   "Show the daemon's calibration status",
		Long:    `Show the phase of the daemon's calibration and the result of its last successful run.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient.GetCalibrationStatus()
			if err != nil {
				return fmt.Errorf("failed to fetch calibration status: %w", err)
			}
			printCalibrationStatus(cmd, st)
			return nil
		},
	}
}

func printCalibrationStatus(cmd *cobra.Command, st *calibration.Status) {
	cmd.Printf("Phase: %s\n", bold(string(st.Phase)))
	if st.Phase == calibration.PhaseCountdown {
		cmd.Printf("Sampling starts in: %s\n", bold("%ds", st.Remaining))
	}
	if !st.StartedAt.IsZero() {
		cmd.Printf("Started: %s (%s ago)\n", st.StartedAt.Format(time.RFC3339), time.Since(st.StartedAt).Round(time.Second))
	}
	cmd.Printf("Can Start: %s\n", bool2Text(st.CanStart))
	if st.Message != "" {
		cmd.Printf("Last error: %s\n", st.Message)
	}

	if st.Result == nil {
		cmd.Println("No result yet.")
		return
	}
	cmd.Println()
	cmd.Println(bold("Last result:"))
	printResult(cmd.OutOrStdout(), st.Result)
}
