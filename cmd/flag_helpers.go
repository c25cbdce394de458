package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// SetupContextFlags adds context-related flags to a command
func SetupContextFlags(cmd *cobra.Command, config *ContextConfig) {
	cmd.Flags().StringVar(&config.JSON, "context", "", "Context data as JSON string")
	cmd.Flags().StringArrayVar(&config.KV, "context-kv", nil, "Context key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&config.File, "context-file", "", "Path to JSON file containing context data")
}

// SetupUploadFlags adds upload-related flags to a command
func SetupUploadFlags(cmd *cobra.Command, config *UploadConfig) {
	cmd.Flags().StringVar(&config.Provider, "upload-provider", "", "Transcript upload provider (e.g., minio)")
	cmd.Flags().StringVar(&config.Config, "upload-config", "", "Upload configuration as JSON string")
	cmd.Flags().StringArrayVar(&config.ConfigKV, "upload-config-kv", nil, "Upload config key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&config.ConfigFile, "upload-config-file", "", "Path to JSON file containing upload configuration")
}

// SetupWebhookFlags adds webhook-related flags to a command
func SetupWebhookFlags(cmd *cobra.Command, config *WebhookConfig) {
	cmd.Flags().StringVar(&config.URL, "webhook-url", "", "Webhook URL to send results to")
	cmd.Flags().StringVar(&config.AuthType, "webhook-auth-type", "none", "Authentication type: none, bearer, api-key")
	cmd.Flags().StringVar(&config.AuthToken, "webhook-auth-token", "", "Authentication token (use with --webhook-auth-type)")
	cmd.Flags().IntVar(&config.Retries, "webhook-retries", 3, "Maximum webhook retry attempts (0 = no retries)")
	cmd.Flags().StringVar(&config.RetryDelay, "webhook-retry-delay", "1s", "Initial delay between webhook retries")
	cmd.Flags().StringVar(&config.Timeout, "webhook-timeout", "30s", "Total timeout for webhook including retries")
}

// ParseTimeout parses and validates a timeout duration string
func ParseTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout duration: %w", err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}

	return timeout, nil
}
