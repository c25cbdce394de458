package agent

import "time"

// CopilotInvoker drives the GitHub Copilot CLI. Copilot takes the prompt as
// an argv token and emits plain text only, so parsing is pure text mining.
type CopilotInvoker struct{}

func (CopilotInvoker) AgentID() string   { return "copilot" }
func (CopilotInvoker) Command() string   { return "copilot" }
func (CopilotInvoker) UsesStdin() bool   { return false }
func (CopilotInvoker) IsInstalled() bool { return installed("copilot") }

func (CopilotInvoker) BuildCommand(prompt, workingDir string, role Role) []string {
	// --yolo auto-approves tool use, -s keeps the output terse.
	return []string{"copilot", "-p", prompt, "--yolo", "-s"}
}

func (CopilotInvoker) ParseOutput(stdout, stderr string, exitCode int, duration time.Duration) *InvocationResult {
	return parsePlainText(stdout, stderr, exitCode, duration)
}
