// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/msword2image/internal/history"
	"github.com/pdiddy/msword2image/internal/inspect"
	"github.com/pdiddy/msword2image/internal/secrets"
	"github.com/pdiddy/msword2image/pkg/msword2image"
	"github.com/pdiddy/msword2image/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file-or-url>",
	Short: "Convert a Word document to an image",
	Long: `Convert submits one Word document to the conversion service. The
argument is read as a URL when it starts with http:// or https://, and as a
local path otherwise.

Use --out to write the image to a file, or --base64 to print it to stdout
as a base64 string. The request is sent once; failures are not retried.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "write the image to this file")
	convertCmd.Flags().Bool("base64", false, "print the image as a base64 string")
	convertCmd.Flags().String("format", "", "image format: png, jpeg or gif (default png)")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	convertCmd.Flags().String("endpoint", "", "conversion service URL")
	convertCmd.Flags().Duration("min-interval", 0, "minimum delay between requests (0 disables)")
	convertCmd.Flags().String("api-user", "", "msword2image account identifier")
	convertCmd.Flags().String("api-key", "", "msword2image account key")
	convertCmd.Flags().Bool("no-history", false, "do not record this conversion in the history database")

	viper.BindPFlag("format", convertCmd.Flags().Lookup("format"))
	viper.BindPFlag("http.timeout", convertCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("http.endpoint", convertCmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("http.min_interval", convertCmd.Flags().Lookup("min-interval"))
	viper.BindPFlag("account.api_user", convertCmd.Flags().Lookup("api-user"))
	viper.BindPFlag("account.api_key", convertCmd.Flags().Lookup("api-key"))
	viper.BindPFlag("history.disabled", convertCmd.Flags().Lookup("no-history"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	asBase64, _ := cmd.Flags().GetBool("base64")
	if (out == "") == !asBase64 {
		return fmt.Errorf("provide exactly one of --out or --base64")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := types.ParseImageFormat(string(cfg.Format))
	if err != nil {
		return err
	}

	acct := secrets.Credentials(cfg.Account, loadedSecrets)
	conv := newConverter(acct, cfg.HTTP)
	if !conv.HasCredentials() {
		slog.Warn("no msword2image credentials configured")
	}

	source := args[0]
	if isRemote(source) {
		conv.FromURL(source)
	} else {
		conv.FromFile(source)
		if ok, mime, err := inspect.IsWordDocument(source); err == nil && !ok {
			slog.Warn("input does not look like a Word document",
				slog.String("path", source), slog.String("mime_type", mime))
		}
	}

	ctx := cmd.Context()
	entry := types.HistoryEntry{StartedAt: time.Now()}

	var encoded string
	if asBase64 {
		encoded, err = conv.ToBase64EncodedString(ctx, format)
	} else {
		err = conv.ToFile(ctx, out, format)
	}
	entry.Duration = time.Since(entry.StartedAt)
	entry.Input, _ = conv.Input()
	entry.Output, _ = conv.Output()

	var summary inspect.Summary
	if err != nil {
		entry.Status = types.ConversionFailed
		entry.Error = err.Error()
	} else {
		entry.Status = types.ConversionDone
		summary = summarize(out, encoded)
		entry.Bytes = summary.Size
		entry.MIMEType = summary.MIMEType
		if summary.MIMEType != "" && !summary.IsImage() {
			slog.Warn("service response is not an image", slog.String("mime_type", summary.MIMEType))
		}
	}

	if !cfg.History.Disabled {
		recordHistory(context.WithoutCancel(ctx), cfg.History, entry)
	}

	if err != nil {
		return err
	}

	if asBase64 {
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "converted: %s (%s)\n", out, summary)
	return nil
}

// newConverter builds a Converter from the account and HTTP settings.
func newConverter(acct types.AccountConfig, cfg types.HTTPConfig) *msword2image.Converter {
	client := &http.Client{Timeout: cfg.Timeout}
	opts := []msword2image.OptionFunc{
		msword2image.WithHTTPClient(client),
		msword2image.WithUserAgent(cfg.UserAgent),
		msword2image.WithRateLimit(cfg.MinInterval, 1),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, msword2image.WithEndpoint(cfg.Endpoint))
	}
	return msword2image.New(acct.APIUser, acct.APIKey, opts...)
}

// isRemote reports whether source is an http(s) URL rather than a path.
func isRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// summarize describes the converted image from the output file or the
// base64 string, whichever was produced.
func summarize(path, encoded string) inspect.Summary {
	if path != "" {
		s, err := inspect.DescribeFile(path)
		if err != nil {
			slog.Warn("could not inspect output", slog.String("path", path), slog.Any("error", err))
		}
		return s
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		slog.Warn("could not decode output", slog.Any("error", err))
		return inspect.Summary{}
	}
	return inspect.DescribeBytes(data)
}

// recordHistory appends entry to the history database. Failures are logged
// and never fail the conversion.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, entry types.HistoryEntry) {
	store, err := history.Open(cfg)
	if err != nil {
		slog.Warn("history unavailable", slog.Any("error", err))
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, entry); err != nil {
		slog.Warn("could not record history", slog.Any("error", err))
	}
}
