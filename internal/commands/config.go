package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diogo/malcolmweb/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change settings",
	Long: `Inspect or change malcolmweb settings.

Settings live in ~/.malcolmweb/config.json. Keys:
  base_url           Service root URL
  socket_url         Realtime channel URL (derived from base_url when empty)
  verbose            Verbose diagnostic output (true/false)
  copy_to_clipboard  Copy each reply to the clipboard (true/false)
  download_dir       Destination for downloaded files
  markdown.style     Rendering style (dark, light, or a theme path)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := applySetting(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "base_url":
		cfg.BaseURL = value
	case "socket_url":
		cfg.SocketURL = value
	case "download_dir":
		cfg.DownloadDir = value
	case "markdown.style":
		cfg.Markdown.Style = value
	case "verbose", "copy_to_clipboard", "markdown.enable_emoji", "markdown.preserve_newlines":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		switch key {
		case "verbose":
			cfg.Verbose = b
		case "copy_to_clipboard":
			cfg.CopyToClipboard = b
		case "markdown.enable_emoji":
			cfg.Markdown.EnableEmoji = b
		case "markdown.preserve_newlines":
			cfg.Markdown.PreserveNewLines = b
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
