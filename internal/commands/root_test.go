package commands

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "malcolmweb [message]" {
		t.Errorf("Use = %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if rootCmd.RunE == nil {
		t.Error("RunE should not be nil")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"base-url", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not found", name)
		}
	}
	for _, name := range []string{"file", "output", "version"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not found", name)
		}
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{
		"chat":     false,
		"optimize": false,
		"upload":   false,
		"download": false,
		"status":   false,
		"config":   false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_ArgsValidator(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{}); err != nil {
		t.Errorf("no args should be accepted: %v", err)
	}
	if err := rootCmd.Args(rootCmd, []string{"one"}); err != nil {
		t.Errorf("one arg should be accepted: %v", err)
	}
	if err := rootCmd.Args(rootCmd, []string{"one", "two"}); err == nil {
		t.Error("two args should be rejected")
	}
}

func TestExecuteWrapperSuccess(t *testing.T) {
	old := rootCmd
	rootCmd = &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	defer func() { rootCmd = old }()

	// Should not call os.Exit for successful execution
	Execute()
}
