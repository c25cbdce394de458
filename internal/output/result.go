package output

import "github.com/zinc-sig/summon/internal/agent"

// Result is the JSON envelope printed after every invocation: the normalized
// agent result plus run identity and optional orchestration metadata.
type Result struct {
	RunID      string `json:"run_id"`
	Agent      string `json:"agent"`
	Role       string `json:"role"`
	WorkingDir string `json:"working_dir,omitempty"`
	Status     string `json:"status"`

	agent.InvocationResult

	Timeout *int64 `json:"timeout,omitempty"` // in milliseconds
	Context any    `json:"context,omitempty"`

	// Webhook status (only in local output, not sent to webhook)
	WebhookSent  bool   `json:"webhook_sent,omitempty"`
	WebhookError string `json:"webhook_error,omitempty"`
}
