package main

import (
	"context"
	"fmt"

	"placement-prep/internal/config"
	"placement-prep/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "placement"

var (
	debugLogs bool
	jsonLogs  bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "Placement preparation API: courses, practice problems, ATS resume check and mock interviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
	addServeFlags(serveCmd)
	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// setup loads configuration and builds the process logger shared by every command.
func setup() (config.Config, *zap.Logger, error) {
	log, err := logger.New(jsonLogs, debugLogs)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, log, nil
}

func syncLogger(log *zap.Logger) {
	_ = log.Sync()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
