package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "tiedye",
	Short:             "Generate tie-dye patterns from a palette of dyes",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	asJSON, _ := cmd.Flags().GetBool("log-json")

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	if asJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Warn("ignoring .env file")
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
