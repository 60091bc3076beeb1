package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var optimizeJSONFlag bool

var optimizeCmd = newOptimizeCmd(nil)

func newOptimizeCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Get device tuning recommendations",
		Long: `Collect a snapshot of this machine's device signals and ask the
optimizer for tuning recommendations.

Signals the host cannot provide are reported as "unknown"; the
optimizer handles partial profiles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps == nil {
				deps = NewDependencies()
			}
			return runOptimize(deps, cmd)
		},
	}
	cmd.Flags().BoolVar(&optimizeJSONFlag, "json", false, "Print recommendations as JSON")
	return cmd
}

func runOptimize(deps *Dependencies, cmd *cobra.Command) error {
	cfg, err := setup(deps)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer deps.Client.Close()

	profile := deps.Collector.Collect()

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[verbose] userAgent: %s\n", profile.UserAgent)
		fmt.Fprintf(os.Stderr, "[verbose] connection: %s\n", profile.ConnectionString())
	}

	var spin *spinner
	if isStdoutTTY() && !optimizeJSONFlag {
		spin = newSpinner("Requesting recommendations")
		spin.start()
	}

	recs, err := deps.Client.Optimize(profile)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Optimize failed"))
		}
		return fmt.Errorf("optimize failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess(fmt.Sprintf("Got %d recommendations", len(recs)))
	}

	out := cmd.OutOrStdout()

	if optimizeJSONFlag {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations.")
		return nil
	}

	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(colorText)

	fmt.Fprintln(out, titleStyle.Render("Recommendations"))
	for _, rec := range recs {
		fmt.Fprintln(out, itemStyle.Render("  - "+rec))
	}
	return nil
}
