package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"recordterm/internal/config"
	"recordterm/internal/importer"
	"recordterm/internal/records"
	"recordterm/internal/ui"
)

var (
	configPath string
	strict     bool
	logLevel   string
	importPath string

	rootCmd = &cobra.Command{
		Use:          "record-term",
		Short:        "A terminal form and table for managing person records in memory",
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (default: user config dir)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "validate names, email and phone on submit")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.Flags().StringVar(&importPath, "import", "", "seed the session from a CSV file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgStore, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("strict") {
		cfgStore.OverrideStrict(strict)
	}
	if logLevel != "" {
		if err := cfgStore.OverrideLevel(logLevel); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(cfgStore)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	state := records.New()
	state.Strict = cfgStore.Config.StrictValidation
	if importPath != "" {
		result, err := importer.ReadFile(importPath)
		if err != nil {
			return fmt.Errorf("import %s: %w", importPath, err)
		}
		result.Reject(state.AppendAll(result.Records))
		for _, problem := range result.Errors {
			logger.WithField("path", importPath).Warn(problem)
		}
		logger.WithField("path", importPath).Info(result.Summary())
	}

	logger.WithFields(log.Fields{"config": cfgStore.Path(), "strict": cfgStore.Config.StrictValidation}).Info("session started")
	program := ui.NewProgram(state, cfgStore, logger)
	if err := program.Start(); err != nil {
		logger.WithError(err).Error("program terminated")
		return err
	}
	logger.WithField("records", len(state.Records)).Info("session ended")
	return nil
}

func loadConfig() (*config.Store, error) {
	if configPath == "" {
		return config.Load()
	}
	return config.LoadFrom(configPath)
}

// newLogger sends log output to the configured file; the terminal belongs to the UI.
func newLogger(cfg *config.Store) (*log.Logger, io.Closer, error) {
	logger := log.New()
	logger.SetLevel(cfg.Level())
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	if err := os.MkdirAll(filepath.Dir(cfg.Config.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(file)
	return logger, file, nil
}
