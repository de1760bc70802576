package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

var agentsCmd = &cobra.Command{
	Use:     "agents",
	Aliases: []string{"list", "ls"},
	Short:   "List agents and their status",
	Args:    cobra.NoArgs,
	RunE:    runAgents,
}

var setCmd = &cobra.Command{
	Use:   "set <agent> <status>",
	Short: "Change an agent's status",
	Long: `Change an agent's status. Status is one of Available, Busy, Break.

When a wallboard is running the change is applied there (and shown in its
view and tray); otherwise it is applied to a fresh roster and only notified.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runAgents(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	agents, err := b.Agents()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(agents) == 0 {
		fmt.Fprintln(out, styleHint.Render("No agents."))
		return nil
	}

	width := 0
	available := 0
	for _, a := range agents {
		width = max(width, lipgloss.Width(a.Name))
		if a.Status == models.AgentStatusAvailable {
			available++
		}
	}

	for _, a := range agents {
		fmt.Fprintf(out, "  %-*s  %s\n", width, a.Name, statusBadge(a.Status))
	}
	fmt.Fprintln(out)
	printSource(out, b)
	fmt.Fprintln(out, styleLabel.Render(wallboard.Tooltip(available)))
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}

	resp, err := b.SetStatus(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s → %s\n",
		styleSuccess.Render("✓"),
		styleValue.Render(resp.Agent),
		statusBadge(models.AgentStatus(resp.PreviousStatus)),
		statusBadge(models.AgentStatus(resp.Status)))
	return nil
}

func printSource(out io.Writer, b backend) {
	if b.Remote() {
		fmt.Fprintln(out, styleLabel.Render("Source: running wallboard"))
		return
	}
	fmt.Fprintln(out, styleHint.Render("Source: roster (no wallboard running)"))
}
