package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zinc-sig/summon/internal/agent"
	"github.com/zinc-sig/summon/internal/config"
	contextparser "github.com/zinc-sig/summon/internal/context"
	"github.com/zinc-sig/summon/internal/runner"
)

var (
	invokeAgentID    string
	invokePrompt     string
	invokePromptFile string
	invokeDir        string
	invokeRoleStr    string
	invokeCommon     CommonFlags
	invokeContext    ContextConfig
	invokeWebhook    WebhookConfig
	invokeUpload     UploadConfig
)

var invokeCmd = &cobra.Command{
	Use:   "invoke --agent <id> [flags]",
	Short: "Run a coding agent once and print the normalized result",
	Long: `Invoke runs one external coding-agent CLI to completion: it builds the
tool-specific non-interactive command line, feeds the prompt as an argument or
on stdin (whichever the agent's contract declares), captures stdout, stderr,
exit code and duration, and prints one JSON result envelope.

The agent binary must be installed; summon refuses to run a missing tool.`,
	Example: `  summon invoke --agent copilot --prompt "Fix the failing test" --dir ./repo
  summon invoke --agent claude --role review --prompt-file review.md --dir ./repo
  echo "Add a README" | summon invoke --agent codex --prompt-file - --dir ./repo`,
	RunE: invokeCommand,
}

func invokeCommand(cmd *cobra.Command, args []string) error {
	role, err := agent.ParseRole(invokeRoleStr)
	if err != nil {
		return err
	}

	if invokeAgentID == "" {
		return fmt.Errorf("no agent selected: pass --agent or set one in the config file")
	}

	inv, err := agent.New(invokeAgentID)
	if err != nil {
		return err
	}

	// Tool-not-found is a configuration error surfaced before any process
	// is spawned.
	if !inv.IsInstalled() {
		return fmt.Errorf("agent %q requires %q on PATH; run 'summon agents' to see what is available",
			inv.AgentID(), inv.Command())
	}

	prompt, err := resolvePrompt(invokePrompt, invokePromptFile)
	if err != nil {
		return err
	}

	provider, err := setupUploadProvider(&invokeUpload)
	if err != nil {
		return err
	}

	argv := inv.BuildCommand(prompt, invokeDir, role)

	runConfig := &runner.Config{
		Command: argv[0],
		Args:    argv[1:],
		Dir:     invokeDir,
		Timeout: invokeCommon.Timeout,
		Verbose: invokeCommon.Verbose,
	}
	if inv.UsesStdin() {
		runConfig.Stdin = prompt
	}

	runID := uuid.NewString()

	if provider != nil {
		stdoutFile, stderrFile, cleanup, err := createTranscriptFiles()
		if err != nil {
			return err
		}
		defer cleanup()
		runConfig.StdoutFile = stdoutFile
		runConfig.StderrFile = stderrFile
	}

	if invokeCommon.Verbose {
		runner.PrintPreExecution(inv.AgentID(), runConfig)
	}

	runResult, err := runner.Execute(runConfig)
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", inv.AgentID(), err)
	}

	if invokeCommon.Verbose {
		runner.PrintPostExecution(runResult)
	}

	parsed := inv.ParseOutput(runResult.Stdout, runResult.Stderr, runResult.ExitCode, runResult.Duration)

	if provider != nil {
		files := map[string]string{
			runConfig.StdoutFile: path.Join(runID, "stdout.log"),
			runConfig.StderrFile: path.Join(runID, "stderr.log"),
		}
		if err := handleUploads(provider, files, invokeCommon.Verbose); err != nil {
			return err
		}
	}

	ctxData, err := contextparser.Build(invokeContext.JSON, invokeContext.KV, invokeContext.File)
	if err != nil {
		return fmt.Errorf("failed to build context: %w", err)
	}

	var timeoutMs int64
	if invokeCommon.Timeout > 0 {
		timeoutMs = invokeCommon.Timeout.Milliseconds()
	}

	envelope := createJSONResult(runID, inv, role, invokeDir, runResult, parsed, timeoutMs, ctxData)

	webhookCfg, retryCfg, err := parseWebhookConfig(&invokeWebhook)
	if err != nil {
		return err
	}

	return outputJSONAndWebhook(envelope, webhookCfg, retryCfg, invokeCommon.Verbose)
}

// resolvePrompt returns the prompt text from --prompt or --prompt-file
// ("-" reads stdin). Exactly one source must be given.
func resolvePrompt(prompt, promptFile string) (string, error) {
	switch {
	case prompt != "" && promptFile != "":
		return "", fmt.Errorf("--prompt and --prompt-file are mutually exclusive")
	case prompt != "":
		return prompt, nil
	case promptFile == "":
		return "", fmt.Errorf("required flag 'prompt' or 'prompt-file' not set")
	case promptFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return string(data), nil
	}
}

// applyConfigDefaults fills unset flags from the config file. Flags always
// win over file values.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) error {
	if invokeAgentID == "" {
		invokeAgentID = cfg.Agent
	}
	if invokeCommon.TimeoutStr == "" {
		invokeCommon.TimeoutStr = cfg.Timeout
	}

	if invokeWebhook.URL == "" && cfg.Webhook.URL != "" {
		invokeWebhook.URL = cfg.Webhook.URL
		if !cmd.Flags().Changed("webhook-auth-type") && cfg.Webhook.AuthType != "" {
			invokeWebhook.AuthType = cfg.Webhook.AuthType
		}
		if invokeWebhook.AuthToken == "" {
			invokeWebhook.AuthToken = cfg.Webhook.AuthToken
		}
		if !cmd.Flags().Changed("webhook-retries") && cfg.Webhook.Retries != nil {
			invokeWebhook.Retries = *cfg.Webhook.Retries
		}
		if !cmd.Flags().Changed("webhook-retry-delay") && cfg.Webhook.RetryDelay != "" {
			invokeWebhook.RetryDelay = cfg.Webhook.RetryDelay
		}
		if !cmd.Flags().Changed("webhook-timeout") && cfg.Webhook.Timeout != "" {
			invokeWebhook.Timeout = cfg.Webhook.Timeout
		}
	}

	if invokeUpload.Provider == "" && cfg.Upload.Provider != "" {
		invokeUpload.Provider = cfg.Upload.Provider
		if invokeUpload.Config == "" && len(cfg.Upload.Config) > 0 {
			data, err := json.Marshal(cfg.Upload.Config)
			if err != nil {
				return fmt.Errorf("invalid upload config in config file: %w", err)
			}
			invokeUpload.Config = string(data)
		}
	}

	return nil
}

func init() {
	invokeCmd.Flags().StringVarP(&invokeAgentID, "agent", "a", "", "Agent id to invoke (see 'summon agents')")
	invokeCmd.Flags().StringVarP(&invokePrompt, "prompt", "p", "", "Prompt text for the agent")
	invokeCmd.Flags().StringVar(&invokePromptFile, "prompt-file", "", "Read the prompt from a file ('-' for stdin)")
	invokeCmd.Flags().StringVarP(&invokeDir, "dir", "d", "", "Working directory for the agent (default: current directory)")
	invokeCmd.Flags().StringVarP(&invokeRoleStr, "role", "r", string(agent.RoleImplementation), "Invocation role: implementation or review")
	invokeCmd.Flags().BoolVarP(&invokeCommon.Verbose, "verbose", "v", false, "Show agent stderr and invocation details on the terminal")
	invokeCmd.Flags().StringVarP(&invokeCommon.TimeoutStr, "timeout", "t", "", "Timeout duration (e.g., 30s, 10m)")

	SetupContextFlags(invokeCmd, &invokeContext)
	SetupWebhookFlags(invokeCmd, &invokeWebhook)
	SetupUploadFlags(invokeCmd, &invokeUpload)

	invokeCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := applyConfigDefaults(cmd, cfg); err != nil {
			return err
		}

		invokeCommon.Timeout, err = ParseTimeout(invokeCommon.TimeoutStr)
		if err != nil {
			return err
		}

		if invokeRoleStr == "" {
			invokeRoleStr = string(agent.RoleImplementation)
		}
		invokeRoleStr = strings.ToLower(invokeRoleStr)

		return nil
	}
}
