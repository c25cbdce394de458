// Package agent runs external coding-agent CLIs as interchangeable workers
// and normalizes their heterogeneous output into one InvocationResult.
//
// Each supported tool gets one Invoker variant that knows the tool's argv
// shape, how the prompt is delivered, and how to mine the tool's output.
// Callers obtain variants through the registry (New) and never depend on a
// concrete type.
package agent

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Role selects the behavior profile an invocation runs under.
type Role string

const (
	RoleImplementation Role = "implementation"
	RoleReview         Role = "review"
)

// ParseRole validates a role string from flags or config.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleImplementation, RoleReview:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q (expected %q or %q)", s, RoleImplementation, RoleReview)
	}
}

// Invoker adapts one external agent CLI to the common invocation contract.
type Invoker interface {
	// AgentID is the stable identifier used in flags, config, and output.
	AgentID() string
	// Command is the executable name looked up on PATH.
	Command() string
	// UsesStdin reports whether the prompt is fed on stdin instead of argv.
	UsesStdin() bool
	// IsInstalled reports whether the executable resolves on PATH.
	IsInstalled() bool
	// BuildCommand returns the full argv for one invocation. The prompt is
	// always a single argv token; it is never interpreted by a shell.
	BuildCommand(prompt, workingDir string, role Role) []string
	// ParseOutput normalizes a finished run's captured output. It must
	// tolerate arbitrary bytes and never fail: low-confidence extraction
	// degenerates to empty lists, not errors.
	ParseOutput(stdout, stderr string, exitCode int, duration time.Duration) *InvocationResult
}

func installed(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

func durationSeconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// parsePlainText is the shared normalization path for tools whose output is
// unstructured text. Success is decided by the exit code alone; failure
// vocabulary on a successful run is surfaced as warnings, never as errors.
func parsePlainText(stdout, stderr string, exitCode int, duration time.Duration) *InvocationResult {
	success := exitCode == 0
	res := &InvocationResult{
		Success:         success,
		ExitCode:        exitCode,
		Stdout:          stdout,
		Stderr:          stderr,
		DurationSeconds: durationSeconds(duration),
		FilesModified:   ExtractFiles(stdout),
		CommitsMade:     ExtractCommits(stdout),
	}

	if strings.TrimSpace(stderr) != "" {
		if !success {
			res.Errors = ExtractErrors(nil, stderr)
		}
		res.Warnings = ExtractWarnings(nil, stderr)
	}

	// Stderr said nothing useful: fall back to scanning stdout, capped so a
	// log-spewing tool cannot flood the result.
	if !success && len(res.Errors) == 0 {
		lines := scanLines(stdout, errorKeywords)
		if len(lines) > fallbackErrorCap {
			lines = lines[:fallbackErrorCap]
		}
		res.Errors = lines
	}

	if success {
		res.Warnings = append(res.Warnings, scanLines(stdout, errorKeywords)...)
	}

	return res
}
