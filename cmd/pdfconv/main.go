// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfconv CLI: PDF to Markdown,
// PDF to DOCX, image extraction and per-page text and metadata dumps.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// configUsed is the config file read at startup, if any.
var configUsed string

// logger is built from the log.* settings before any subcommand runs.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "pdfconv",
	Short: "Convert PDF documents to Markdown and DOCX",
	Long: `pdfconv converts PDF documents into Markdown or Word documents and extracts
their images, text and metadata. Each subcommand takes one input file and
writes its outputs next to it, or into --output-dir.

Previous outputs for the same input are deleted before a new run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logConfig())
		if err != nil {
			return err
		}
		logger = l
		if configUsed != "" {
			logger.Debug("using config file", zap.String("path", configUsed))
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		if filled := secrets.Apply(viper.GetViper(), s); len(filled) > 0 {
			logger.Debug("configuration filled from secrets", zap.Strings("keys", filled))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdfconv.yaml or ~/.config/pdfconv/pdfconv.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.StringP("output-dir", "o", "", "output directory (default: the input's directory)")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("output_dir", pf.Lookup("output-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfconv"))
		}
	}

	viper.SetEnvPrefix("PDFCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		configUsed = viper.ConfigFileUsed()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
