package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/malcolmweb/internal/config"
)

var downloadDirFlag string

var downloadCmd = newDownloadCmd(nil)

func newDownloadCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <filename>",
		Short: "Download a previously uploaded file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps == nil {
				deps = NewDependencies()
			}
			return runDownload(deps, cmd, args[0])
		},
	}
	cmd.Flags().StringVarP(&downloadDirFlag, "dir", "d", "", "Destination directory (defaults to the configured download dir)")
	return cmd
}

func runDownload(deps *Dependencies, cmd *cobra.Command, filename string) error {
	cfg, err := setup(deps)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer deps.Client.Close()

	destDir := downloadDirFlag
	if destDir == "" {
		destDir, err = config.GetDownloadDir(cfg)
		if err != nil {
			return err
		}
	}

	var spin *spinner
	if isStdoutTTY() {
		spin = newSpinner("Downloading " + filename)
		spin.start()
	}

	path, err := deps.Client.Download(filename, destDir)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Download failed"))
		}
		return fmt.Errorf("download failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Saved")
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
