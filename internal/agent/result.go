package agent

// InvocationResult is the normalized outcome of one agent run. Every
// invoker variant produces the same shape regardless of how chatty or
// structured the underlying tool's output is.
type InvocationResult struct {
	Success         bool     `json:"success"`
	ExitCode        int      `json:"exit_code"`
	Stdout          string   `json:"stdout"`
	Stderr          string   `json:"stderr"`
	DurationSeconds float64  `json:"duration_seconds"`
	FilesModified   []string `json:"files_modified,omitempty"`
	CommitsMade     []string `json:"commits_made,omitempty"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}
