package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/care-log/internal/langfuse"
	"github.com/spf13/cobra"
)

func newTraceTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace-test",
		Short: "Send a test trace to Langfuse",
		Long:  "Check Langfuse connectivity by creating a test trace with the configured LANGFUSE_* keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lfCfg := langfuse.Config{
				BaseURL:     cfg.LangfuseBaseURL,
				PublicKey:   cfg.LangfusePublicKey,
				SecretKey:   cfg.LangfuseSecretKey,
				Environment: cfg.LangfuseEnv,
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Langfuse Connection Test ===")
			fmt.Fprintf(out, "Base URL:    %s\n", lfCfg.BaseURL)
			fmt.Fprintf(out, "Public Key:  %s\n", maskKey(lfCfg.PublicKey))
			fmt.Fprintf(out, "Secret Key:  %s\n", maskKey(lfCfg.SecretKey))
			fmt.Fprintf(out, "Environment: %s\n\n", lfCfg.Environment)

			client := langfuse.NewClient(lfCfg)
			if !client.IsEnabled() {
				return errors.New("langfuse client is disabled, check LANGFUSE_BASE_URL and keys")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
				Name: "test-trace",
				Input: map[string]any{
					"message": "Hello from carelog trace-test",
					"time":    time.Now().Format(time.RFC3339),
				},
				Output: map[string]any{"status": "success"},
				Tags:   []string{"test", "manual"},
			})
			if err != nil {
				return fmt.Errorf("create trace: %w", err)
			}
			if err := client.Flush(ctx); err != nil {
				return fmt.Errorf("deliver trace: %w", err)
			}

			fmt.Fprintln(out, "Test trace created successfully")
			fmt.Fprintf(out, "  Trace ID: %s\n", traceID)
			fmt.Fprintf(out, "  View at:  %s/trace/%s\n", lfCfg.BaseURL, traceID)
			return nil
		},
	}
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
