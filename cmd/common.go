package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/zinc-sig/summon/internal/agent"
	"github.com/zinc-sig/summon/internal/output"
	"github.com/zinc-sig/summon/internal/runner"
	"github.com/zinc-sig/summon/internal/webhook"
)

// createJSONResult wraps a parsed invocation in the output envelope.
func createJSONResult(runID string, inv agent.Invoker, role agent.Role, workingDir string, runResult *runner.Result, parsed *agent.InvocationResult, timeoutMs int64, ctxData any) *output.Result {
	envelope := &output.Result{
		RunID:            runID,
		Agent:            inv.AgentID(),
		Role:             string(role),
		WorkingDir:       workingDir,
		Status:           string(runResult.Status),
		InvocationResult: *parsed,
		Context:          ctxData,
	}

	// Add timeout if it was set
	if timeoutMs > 0 {
		envelope.Timeout = &timeoutMs
	}

	return envelope
}

// outputJSON marshals and prints the result as JSON
func outputJSON(result *output.Result) error {
	jsonOutput, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	fmt.Println(string(jsonOutput))
	return nil
}

// parseWebhookConfig converts webhook flags into client configuration.
// Returns nil configs when no webhook is set.
func parseWebhookConfig(config *WebhookConfig) (*webhook.Config, *webhook.RetryConfig, error) {
	if config.URL == "" {
		return nil, nil, nil // No webhook configured
	}

	webhookTimeout := 30 * time.Second
	if config.Timeout != "" {
		var err error
		webhookTimeout, err = time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook timeout duration: %w", err)
		}
	}

	retryDelay := 1 * time.Second
	if config.RetryDelay != "" {
		var err error
		retryDelay, err = time.ParseDuration(config.RetryDelay)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook retry delay: %w", err)
		}
	}

	clientConfig := &webhook.Config{
		URL:       config.URL,
		Method:    "POST",
		Timeout:   webhookTimeout,
		AuthType:  config.AuthType,
		AuthToken: config.AuthToken,
	}

	retryConfig := &webhook.RetryConfig{
		MaxRetries:   config.Retries,
		InitialDelay: retryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	return clientConfig, retryConfig, nil
}

// outputJSONAndWebhook outputs JSON to stdout and optionally sends to webhook
func outputJSONAndWebhook(result *output.Result, config *webhook.Config, retryConfig *webhook.RetryConfig, verbose bool) error {
	if config != nil && config.URL != "" {
		client := webhook.NewClient(config, retryConfig, verbose)

		if verbose {
			fmt.Fprintf(os.Stderr, "[WEBHOOK] Sending to %s\n", config.URL)
		}

		// Send a copy without the local-only webhook status fields.
		webhookPayload := *result
		webhookPayload.WebhookSent = false
		webhookPayload.WebhookError = ""

		ctx := context.Background()
		if err := client.Send(ctx, &webhookPayload); err != nil {
			// Delivery failure never fails the invocation.
			fmt.Fprintf(os.Stderr, "[WEBHOOK] Error: %v\n", err)

			result.WebhookSent = false
			result.WebhookError = err.Error()
		} else {
			result.WebhookSent = true
		}
	}

	// Always output to stdout
	return outputJSON(result)
}
