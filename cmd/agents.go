package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zinc-sig/summon/internal/agent"
)

var agentsJSON bool

// agentInfo describes one registered invoker variant for listing.
type agentInfo struct {
	ID        string `json:"id"`
	Command   string `json:"command"`
	Prompt    string `json:"prompt"` // "stdin" or "argument"
	Installed bool   `json:"installed"`
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and whether they are installed",
	Long: `Agents lists every registered invoker variant with the binary it executes,
how it receives the prompt, and whether that binary resolves on PATH right now.`,
	Example: `  summon agents
  summon agents --json`,
	RunE: agentsCommand,
}

func agentsCommand(cmd *cobra.Command, args []string) error {
	var infos []agentInfo
	for _, id := range agent.IDs() {
		inv, err := agent.New(id)
		if err != nil {
			return err
		}
		transport := "argument"
		if inv.UsesStdin() {
			transport = "stdin"
		}
		infos = append(infos, agentInfo{
			ID:        inv.AgentID(),
			Command:   inv.Command(),
			Prompt:    transport,
			Installed: inv.IsInstalled(),
		})
	}

	if agentsJSON {
		data, err := json.Marshal(infos)
		if err != nil {
			return fmt.Errorf("failed to marshal agent list: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tCOMMAND\tPROMPT\tINSTALLED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", info.ID, info.Command, info.Prompt, info.Installed)
	}
	return w.Flush()
}

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Output the agent list as JSON")
}
