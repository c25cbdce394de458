package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodexBuildCommand(t *testing.T) {
	inv := CodexInvoker{}

	argv := inv.BuildCommand("add a README", "/work", RoleImplementation)
	assert.Equal(t, []string{"codex", "exec", "--json", "--full-auto", "add a README"}, argv)

	review := inv.BuildCommand("review the diff", "/work", RoleReview)
	assert.Equal(t, []string{"codex", "exec", "--json", "--full-auto", "--sandbox", "read-only", "review the diff"}, review)
}

func TestCodexContract(t *testing.T) {
	inv := CodexInvoker{}
	assert.Equal(t, "codex", inv.AgentID())
	assert.False(t, inv.UsesStdin())
}

func TestCodexParseOutputEvents(t *testing.T) {
	inv := CodexInvoker{}

	t.Run("agent messages mined for files", func(t *testing.T) {
		stdout := `{"id":"0","msg":{"type":"task_started"}}
{"id":"1","msg":{"type":"agent_message","message":"Created src/main.rs and updated Cargo.toml"}}
`
		res := inv.ParseOutput(stdout, "", 0, time.Second)
		assert.True(t, res.Success)
		assert.ElementsMatch(t, []string{"Cargo.toml", "src/main.rs"}, res.FilesModified)
	})

	t.Run("error events become errors on failure", func(t *testing.T) {
		stdout := `{"id":"0","msg":{"type":"error","message":"sandbox denied write"}}`
		res := inv.ParseOutput(stdout, "", 1, time.Second)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"sandbox denied write"}, res.Errors)
	})

	t.Run("error events on success surface as warnings", func(t *testing.T) {
		stdout := `{"id":"0","msg":{"type":"error","message":"retrying request"}}`
		res := inv.ParseOutput(stdout, "", 0, time.Second)
		assert.True(t, res.Success)
		assert.Equal(t, []string{"retrying request"}, res.Warnings)
	})

	t.Run("plain text mixed between events", func(t *testing.T) {
		stdout := "booting model\n{\"id\":\"1\",\"msg\":{\"type\":\"agent_message\",\"message\":\"Wrote notes.md\"}}\n{broken json\n"
		res := inv.ParseOutput(stdout, "", 0, time.Second)
		assert.True(t, res.Success)
		assert.Equal(t, []string{"notes.md"}, res.FilesModified)
	})

	t.Run("stderr preferred for errors", func(t *testing.T) {
		stdout := `{"id":"0","msg":{"type":"error","message":"event error"}}`
		res := inv.ParseOutput(stdout, "error: out of quota\n", 1, time.Second)
		assert.Equal(t, []string{"error: out of quota"}, res.Errors)
	})

	t.Run("fallback text scan capped", func(t *testing.T) {
		stdout := "error a\nerror b\nerror c\nerror d\n"
		res := inv.ParseOutput(stdout, "", 1, time.Second)
		assert.Len(t, res.Errors, 3)
	})
}
