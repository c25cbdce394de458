package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Factory creates a fresh invoker variant.
type Factory func() Invoker

var registry = make(map[string]Factory)

// Register makes an invoker variant available under the given id.
func Register(id string, factory Factory) {
	registry[id] = factory
}

// New returns the invoker registered for the given agent id. Unknown ids
// are a configuration error and name the known ids in the message.
func New(id string) (Invoker, error) {
	factory, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (supported: %s)", id, strings.Join(IDs(), ", "))
	}
	return factory(), nil
}

// IDs returns the registered agent ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	Register("copilot", func() Invoker { return CopilotInvoker{} })
	Register("claude", func() Invoker { return ClaudeInvoker{} })
	Register("codex", func() Invoker { return CodexInvoker{} })
}
