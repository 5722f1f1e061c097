package main

import (
	"fmt"

	"github.com/daniel-clain/Auto-Debater/internal/config"
	"github.com/daniel-clain/Auto-Debater/internal/output"
	"github.com/daniel-clain/Auto-Debater/internal/store"
	"github.com/spf13/cobra"
)

func newRivalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rival",
		Short: "Inspect a stored rival profile",
		RunE:  runRival,
	}
	cmd.Flags().String("identifier", "", "Opponent identifier (required)")
	cmd.MarkFlagRequired("identifier")
	return cmd
}

func runRival(cmd *cobra.Command, args []string) error {
	identifier, _ := cmd.Flags().GetString("identifier")

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	profile, err := st.GetRivalProfile(cmd.Context(), identifier)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile found for identifier %q", identifier)
	}
	output.PrintProfile(*profile)
	return nil
}
