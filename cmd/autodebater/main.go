package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "autodebater",
		Short: "Realtime debate-assistance backend",
		Long:  "Scores live debate transcripts through a multi-provider consensus engine, tracks opponent personas, enforces a civility boundary, and streams ranked counter-arguments over websocket.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		},
	}

	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newRivalCmd())
	root.AddCommand(newSessionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
