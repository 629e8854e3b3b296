// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/redact-studio/internal/httputil"
	"github.com/pdiddy/redact-studio/internal/prefs"
	"github.com/pdiddy/redact-studio/internal/service"
	"github.com/pdiddy/redact-studio/internal/stubservice"
	"github.com/pdiddy/redact-studio/pkg/types"
)

const (
	defaultTimeout   = 120 * time.Second
	defaultUserAgent = "redact-studio/0.1"
)

// setDefaults registers config keys so that env and file values are found.
func setDefaults() {
	viper.SetDefault("server", service.DefaultBaseURL)
	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("max_response_bytes", httputil.DefaultMaxBody)
	viper.SetDefault("prefs", prefs.DefaultPath())
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("stub.addr", stubservice.DefaultAddr)
}

func clientConfig() types.ClientConfig {
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		BaseURL:          viper.GetString("server"),
		MaxResponseBytes: viper.GetInt64("max_response_bytes"),
	}
}

func newClient() *service.Client {
	cfg := clientConfig()
	return service.New(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
}

// loadPrefs reads the preferences file, falling back to defaults with a
// warning when it is unreadable.
func loadPrefs() prefs.Prefs {
	p, err := prefs.Load(viper.GetString("prefs"))
	if err != nil {
		logger.Warn("ignoring preferences", "err", err)
	}
	return p
}

// outputDir resolves --output-dir, then config, then preferences.
func outputDir(cmd *cobra.Command, p prefs.Prefs) string {
	if cmd.Flags().Changed("output-dir") {
		dir, _ := cmd.Flags().GetString("output-dir")
		return dir
	}
	if dir := viper.GetString("output_dir"); dir != "" {
		return dir
	}
	return p.OutputDir
}
