// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the msword2image CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/msword2image/internal/logging"
	"github.com/pdiddy/msword2image/internal/secrets"
	"github.com/pdiddy/msword2image/pkg/msword2image"
	"github.com/pdiddy/msword2image/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	secretsDir     = ".secrets/"
	defaultTimeout = 60 * time.Second
)

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logCloser releases the log file opened in PersistentPreRunE.
var logCloser io.Closer

// rootCmd is the base command for the msword2image CLI.
var rootCmd = &cobra.Command{
	Use:   "msword2image",
	Short: "Convert Word documents to images with the msword2image service",
	Long: `msword2image sends a Word document, either a local file or a URL the
service can fetch, to the msword2image conversion service and saves the
rendered image to a file or prints it as a base64 string.

Credentials are read from flags, the config file, MSWORD2IMAGE_* environment
variables, or the .secrets/ directory (msword2image-api-user and
msword2image-api-key).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, closer, err := logging.Setup(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		logCloser = closer

		s, err := secrets.Load(secretsDir)
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
			slog.Debug("loaded secrets", slog.Any("keys", keys))
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./msword2image.yaml or ~/.config/msword2image/msword2image.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file, rotated by size")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".msword2image"
	}
	return filepath.Join(home, ".config", "msword2image")
}

func initConfig() {
	viper.SetDefault("http.endpoint", msword2image.DefaultEndpoint)
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", "msword2image/"+version)
	viper.SetDefault("format", string(types.DefaultImageFormat))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("history.dir", filepath.Join(configDir(), "history"))
	viper.SetDefault("history.max_results", 20)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("msword2image")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(configDir())
	}

	viper.SetEnvPrefix("MSWORD2IMAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
