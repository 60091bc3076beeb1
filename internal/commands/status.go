package commands

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = newStatusCmd(nil)

func newStatusCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check service health and deployment metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps == nil {
				deps = NewDependencies()
			}
			return runStatus(deps, cmd)
		},
	}
}

func runStatus(deps *Dependencies, cmd *cobra.Command) error {
	if _, err := setup(deps); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer deps.Client.Close()

	out := cmd.OutOrStdout()
	keyStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	fmt.Fprintln(out, keyStyle.Render("Service: ")+valStyle.Render(deps.Client.BaseURL()))

	status, err := deps.Client.Health()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Health check failed"))
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintln(out, keyStyle.Render("Health:  ")+valStyle.Render(status))

	// Metadata is best-effort; a missing endpoint does not fail the command.
	meta, err := deps.Client.Meta()
	if err != nil {
		fmt.Fprintln(out, dimStyle.Render("(no deployment metadata available)"))
		return nil
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "%s %s\n",
			dimStyle.Render("  "+k+":"),
			valStyle.Render(fmt.Sprintf("%v", meta[k])))
	}
	return nil
}
