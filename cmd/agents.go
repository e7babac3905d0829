package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents [id]",
	Short: "List the agents in pipeline order, or describe one",
	Example: `  codecrew agents
  codecrew agents critic`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for i, a := range core.Registry() {
				fmt.Fprintf(out, "%d. %-8s %s\n", i+1, a.Name, a.Description)
			}
			return nil
		}

		id := strings.ToLower(strings.TrimSpace(args[0]))
		info := core.GetAgentByID(id)
		if info == nil {
			ids := make([]string, 0, len(core.Registry()))
			for _, a := range core.Registry() {
				ids = append(ids, a.ID)
			}
			return fmt.Errorf("unknown agent %q (available: %s)", args[0], strings.Join(ids, ", "))
		}
		fmt.Fprintf(out, "ID:          %s\n", info.ID)
		fmt.Fprintf(out, "Name:        %s\n", info.Name)
		fmt.Fprintf(out, "Description: %s\n", info.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
