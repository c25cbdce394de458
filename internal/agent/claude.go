package agent

import (
	"encoding/json"
	"strings"
	"time"
)

// ClaudeInvoker drives the Claude CLI in print mode. The prompt is fed on
// stdin and the run's outcome arrives as a single JSON envelope on stdout,
// which is the one case where a tool-level error flag may downgrade a zero
// exit to failure.
type ClaudeInvoker struct{}

func (ClaudeInvoker) AgentID() string   { return "claude" }
func (ClaudeInvoker) Command() string   { return "claude" }
func (ClaudeInvoker) UsesStdin() bool   { return true }
func (ClaudeInvoker) IsInstalled() bool { return installed("claude") }

func (ClaudeInvoker) BuildCommand(prompt, workingDir string, role Role) []string {
	argv := []string{"claude", "-p", "--output-format", "json", "--dangerously-skip-permissions"}
	if role == RoleReview {
		argv = append(argv, "--allowedTools", "Read,Grep,Glob")
	}
	return argv
}

func (ClaudeInvoker) ParseOutput(stdout, stderr string, exitCode int, duration time.Duration) *InvocationResult {
	payload := decodePayload(stdout)
	if payload == nil {
		return parsePlainText(stdout, stderr, exitCode, duration)
	}

	success := exitCode == 0
	if isError, ok := payload["is_error"].(bool); ok && isError {
		success = false
	}

	resultText, _ := payload["result"].(string)

	res := &InvocationResult{
		Success:         success,
		ExitCode:        exitCode,
		Stdout:          stdout,
		Stderr:          stderr,
		DurationSeconds: durationSeconds(duration),
		FilesModified:   ExtractFiles(resultText),
		CommitsMade:     ExtractCommits(resultText),
		Warnings:        ExtractWarnings(payload, stderr),
	}

	if !success {
		res.Errors = ExtractErrors(payload, resultText)
		if len(res.Errors) == 0 && strings.TrimSpace(resultText) != "" {
			res.Errors = []string{strings.TrimSpace(resultText)}
		}
	}

	return res
}

// decodePayload parses stdout as a single JSON object. Anything else,
// including truncated JSON, yields nil and the caller falls back to plain
// text mining.
func decodePayload(stdout string) map[string]any {
	trimmed := strings.TrimSpace(stdout)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil
	}
	return payload
}
