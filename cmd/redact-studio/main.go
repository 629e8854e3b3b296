// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the redact-studio CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/redact-studio/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets = secrets.Store{}

// logger is the structured debug logger; --verbose lowers its level.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// rootCmd is the base command for the redact-studio CLI.
var rootCmd = &cobra.Command{
	Use:   "redact-studio",
	Short: "Analyze and redact sensitive content through a redaction service",
	Long: `redact-studio sends text, images, and PDFs to a content-analysis and
redaction service and turns its responses into reports and downloaded files.

Each page of the service is a subcommand: analyze finds sensitive entities in
text, redact image and redact pdf return redacted copies, and encrypt
password-protects a PDF. The service itself does the detection; this tool
validates inputs, shapes requests, and saves results.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./redact-studio.yaml or ~/.config/redact-studio/redact-studio.yaml)")
	pf.String("server", "", "service base URL (default http://localhost:3000)")
	pf.BoolP("verbose", "v", false, "log requests and decisions to stderr")
	pf.String("secrets-dir", secrets.DefaultDir, "directory of secret files")

	_ = viper.BindPFlag("server", pf.Lookup("server"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("secrets_dir", pf.Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("redact-studio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "redact-studio"))
		}
	}

	setDefaults()
	viper.SetEnvPrefix("REDACT_STUDIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
