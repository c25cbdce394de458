package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "summon",
	Short: "Run coding-agent CLIs as interchangeable workers",
	Long: `Summon invokes external coding-agent CLIs (copilot, claude, codex) with a
prompt and working directory, and normalizes whatever they print (exit codes,
plain text, partial JSON) into one uniform JSON result.

Orchestrators above it pick an agent id and consume the result; summon owns
how each tool is invoked and how its output is interpreted.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(agentsCmd)
}
