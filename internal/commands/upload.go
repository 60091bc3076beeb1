package commands

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var uploadCmd = newUploadCmd(nil)

func newUploadCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file for review",
		Long: `Upload a file to Malcolm and print the feedback it returns.

The file goes up as a single multipart request; there is no retry on
failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps == nil {
				deps = NewDependencies()
			}
			return runUpload(deps, cmd, args[0])
		},
	}
}

func runUpload(deps *Dependencies, cmd *cobra.Command, path string) error {
	if _, err := setup(deps); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer deps.Client.Close()

	var spin *spinner
	if isStdoutTTY() {
		spin = newSpinner("Uploading " + filepath.Base(path))
		spin.start()
	}

	result, err := deps.Client.UploadFile(path)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Upload failed"))
		}
		return fmt.Errorf("upload failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess(result.Message)
	}

	feedbackStyle := lipgloss.NewStyle().Foreground(colorText)
	fmt.Fprintln(cmd.OutOrStdout(), feedbackStyle.Render(result.Feedback))
	return nil
}
