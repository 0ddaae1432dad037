package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/bracket-system/brackets"
)

func newValidateCmd() *cobra.Command {
	var (
		teams     int
		kind      string
		groupSize int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether a team count fits a bracket type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := brackets.ValidateTeamCount(teams, brackets.Kind(kind), groupSize); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d teams fit %s\n", teams, kind)
			return nil
		},
	}
	cmd.Flags().IntVar(&teams, "teams", 0, "number of teams")
	cmd.Flags().StringVar(&kind, "kind", string(brackets.KindSingleElimination), "bracket type")
	cmd.Flags().IntVar(&groupSize, "group-size", brackets.DefaultGroupSize, "teams per group for group stages")
	_ = cmd.MarkFlagRequired("teams")
	return cmd
}
