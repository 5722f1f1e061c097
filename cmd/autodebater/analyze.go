package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/daniel-clain/Auto-Debater/internal/config"
	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/debate/consensus"
	"github.com/daniel-clain/Auto-Debater/internal/output"
	"github.com/daniel-clain/Auto-Debater/internal/provider"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one utterance through the consensus analysis engine",
		RunE:  runAnalyze,
	}
	cmd.Flags().String("text", "", "Utterance text (required)")
	cmd.Flags().String("speaker", string(debate.SpeakerOpponent), "Speaker: user or opponent")
	cmd.MarkFlagRequired("text")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	speaker, _ := cmd.Flags().GetString("speaker")

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := provider.NewRegistry(provider.Credentials{
		OpenAIKey:     cfg.OpenAIKey,
		OpenAIModel:   cfg.OpenAIModel,
		DeepSeekKey:   cfg.DeepSeekKey,
		DeepSeekModel: cfg.DeepSeekModel,
		GrokKey:       cfg.GrokKey,
		GrokModel:     cfg.GrokModel,
	})
	engine := consensus.NewEngine(registry.Providers(), cfg.ProviderTimeout)

	analysis := engine.Analyze(ctx, text, debate.Speaker(speaker))
	output.PrintAnalysis(analysis)
	return nil
}
