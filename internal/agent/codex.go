package agent

import (
	"encoding/json"
	"strings"
	"time"
)

// CodexInvoker drives the Codex CLI in exec mode. With --json the tool
// emits one JSON event per line, interleaved with plain text from whatever
// subprocesses it ran, so each line is decoded independently and non-event
// lines are kept for text mining.
type CodexInvoker struct{}

func (CodexInvoker) AgentID() string   { return "codex" }
func (CodexInvoker) Command() string   { return "codex" }
func (CodexInvoker) UsesStdin() bool   { return false }
func (CodexInvoker) IsInstalled() bool { return installed("codex") }

func (CodexInvoker) BuildCommand(prompt, workingDir string, role Role) []string {
	argv := []string{"codex", "exec", "--json", "--full-auto"}
	if role == RoleReview {
		argv = append(argv, "--sandbox", "read-only")
	}
	return append(argv, prompt)
}

type codexEvent struct {
	ID  string `json:"id"`
	Msg struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"msg"`
}

func (CodexInvoker) ParseOutput(stdout, stderr string, exitCode int, duration time.Duration) *InvocationResult {
	messages, eventErrors := decodeEventLines(stdout)
	success := exitCode == 0

	res := &InvocationResult{
		Success:         success,
		ExitCode:        exitCode,
		Stdout:          stdout,
		Stderr:          stderr,
		DurationSeconds: durationSeconds(duration),
		FilesModified:   ExtractFiles(messages),
		CommitsMade:     ExtractCommits(messages),
	}

	if strings.TrimSpace(stderr) != "" {
		if !success {
			res.Errors = ExtractErrors(nil, stderr)
		}
		res.Warnings = ExtractWarnings(nil, stderr)
	}

	if !success && len(res.Errors) == 0 {
		res.Errors = eventErrors
	}
	if !success && len(res.Errors) == 0 {
		lines := scanLines(messages, errorKeywords)
		if len(lines) > fallbackErrorCap {
			lines = lines[:fallbackErrorCap]
		}
		res.Errors = lines
	}

	if success {
		res.Warnings = append(res.Warnings, eventErrors...)
		res.Warnings = append(res.Warnings, scanLines(messages, errorKeywords)...)
	}

	return res
}

// decodeEventLines splits JSONL output into mined text and error messages.
// Lines that do not decode as events pass through as text.
func decodeEventLines(stdout string) (messages string, eventErrors []string) {
	var text strings.Builder
	for _, line := range strings.Split(stdout, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			var event codexEvent
			if err := json.Unmarshal([]byte(trimmed), &event); err == nil {
				switch event.Msg.Type {
				case "agent_message":
					text.WriteString(event.Msg.Message)
					text.WriteString("\n")
				case "error":
					eventErrors = append(eventErrors, event.Msg.Message)
				}
				continue
			}
		}
		text.WriteString(line)
		text.WriteString("\n")
	}
	return text.String(), eventErrors
}
