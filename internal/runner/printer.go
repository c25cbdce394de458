package runner

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// PrintPreExecution prints invocation details to stderr before the agent runs.
func PrintPreExecution(agentID string, config *Config) {
	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintln(os.Stderr, "Summon Agent Invocation")
	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintf(os.Stderr, "Agent:   %s\n", agentID)
	fmt.Fprintf(os.Stderr, "Command: %s %s\n", config.Command, strings.Join(config.Args, " "))
	if config.Dir != "" {
		fmt.Fprintf(os.Stderr, "Dir:     %s\n", config.Dir)
	}
	if config.Stdin != "" {
		fmt.Fprintf(os.Stderr, "Prompt:  %d bytes on stdin\n", len(config.Stdin))
	}
	if config.Timeout > 0 {
		fmt.Fprintf(os.Stderr, "Timeout: %s\n", config.Timeout)
	}
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintln(os.Stderr, "Agent Output:")
	fmt.Fprintln(os.Stderr, "----------------------------------------")
}

// PrintPostExecution prints the raw capture summary after the agent finishes.
func PrintPostExecution(result *Result) {
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintln(os.Stderr, "Invocation Results:")
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintf(os.Stderr, "Status:    %s\n", result.Status)
	fmt.Fprintf(os.Stderr, "Exit Code: %d\n", result.ExitCode)
	fmt.Fprintf(os.Stderr, "Duration:  %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(os.Stderr, "========================================")
}
