package main

import (
	"fmt"

	"github.com/daniel-clain/Auto-Debater/internal/config"
	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/output"
	"github.com/daniel-clain/Auto-Debater/internal/store"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Replay a stored session's arguments and summary",
		RunE:  runSession,
	}
	cmd.Flags().String("id", "", "Session id (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("id")

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

	records, err := st.Arguments(cmd.Context(), sessionID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no arguments found for session %q", sessionID)
	}

	for _, record := range records {
		fmt.Printf("%s [%s] %s\n",
			record.CreatedAt.Format("15:04:05"), output.Bold(string(record.Speaker)), record.Text)
		output.PrintAnalysis(record.Analysis)
		fmt.Println()
	}
	output.PrintSummary(debate.Summarize(records))
	return nil
}
