package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/daniel-clain/Auto-Debater/internal/config"
	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/debate/consensus"
	"github.com/daniel-clain/Auto-Debater/internal/profile"
	"github.com/daniel-clain/Auto-Debater/internal/provider"
	"github.com/daniel-clain/Auto-Debater/internal/rebuttal"
	"github.com/daniel-clain/Auto-Debater/internal/server"
	"github.com/daniel-clain/Auto-Debater/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the realtime websocket backend",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := store.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	registry := provider.NewRegistry(provider.Credentials{
		OpenAIKey:     cfg.OpenAIKey,
		OpenAIModel:   cfg.OpenAIModel,
		DeepSeekKey:   cfg.DeepSeekKey,
		DeepSeekModel: cfg.DeepSeekModel,
		GrokKey:       cfg.GrokKey,
		GrokModel:     cfg.GrokModel,
	})
	active := registry.Active()
	logrus.WithFields(logrus.Fields{
		"declared": len(registry.Providers()),
		"active":   len(active),
	}).Info("analysis providers")

	engine := consensus.NewEngine(registry.Providers(), cfg.ProviderTimeout)
	history := debate.NewHistory(st)
	profiler := profile.NewProfiler(st)

	var generator debate.Generator = rebuttal.Disabled{}
	if len(active) > 0 {
		if chat, ok := active[0].(*provider.ChatProvider); ok {
			generator = rebuttal.NewLLMGenerator(chat.Client(), chat.Model())
		}
	} else {
		logrus.Warn("no provider credentials configured; rebuttal generation disabled")
	}

	coord := debate.NewCoordinator(history, profiler, generator)
	app := server.New(server.NewHandler(engine, coord))

	go func() {
		<-ctx.Done()
		logrus.Info("shutting down")
		_ = app.Shutdown()
	}()

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
