package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xqrs/stableview/internal/statefile"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or remove the saved scroll position",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved scroll position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		defer s.closeLog()

		snap, ok, err := statefile.Load(s.statePath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "no saved position at %s\n", s.statePath)
			return nil
		}
		fmt.Fprintf(out, "%s\n", s.statePath)
		fmt.Fprintf(out, "  position %s\n", positionColor.Sprint(snap.Position()))
		fmt.Fprintf(out, "  saved    %s\n", snap.SavedAt.Local().Format(time.DateTime))
		return nil
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved scroll position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		defer s.closeLog()

		if err := statefile.Remove(s.statePath); err != nil {
			return fmt.Errorf("remove %s: %w", s.statePath, err)
		}
		s.logger.Info("cleared position", "path", s.statePath)
		return nil
	},
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)
}
