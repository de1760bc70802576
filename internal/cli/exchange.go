package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/wallboard/internal/exchange"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export agents as name,status lines",
	Long: `Export the agent list. Without a file, name,status lines are written to stdout.
The file extension selects the format: .json, .xlsx, or name,status text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply agent statuses from a file",
	Long: `Apply name,status entries from a .txt, .csv, .json or .xlsx file.
Unknown agents and invalid statuses are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		text, err := b.Export()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	agents, err := b.Agents()
	if err != nil {
		return err
	}
	path := args[0]
	if err := exchange.Export(path, slices.Values(agents)); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Exported %d agents to %s\n", styleSuccess.Render("✓"), len(agents), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := exchange.Open(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("File:"), styleValue.Render(f.Name))
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Path:"), styleValue.Render(f.Path))
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Size:"), styleValue.Render(fmt.Sprintf("%d bytes", f.Size)))

	if len(f.Entries) == 0 {
		fmt.Fprintln(out, styleHint.Render("No entries to apply."))
		return nil
	}

	b, err := openBackend()
	if err != nil {
		return err
	}
	resp, err := b.Import(f.Entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Applied %d of %d entries\n", styleSuccess.Render("✓"), resp.Applied, len(f.Entries))
	for _, sk := range resp.Skipped {
		fmt.Fprintf(out, "  %s line %d (%s): %s\n", styleWarning.Render("skipped"), sk.Line, sk.Name, sk.Reason)
	}
	return nil
}
