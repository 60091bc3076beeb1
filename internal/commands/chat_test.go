package commands

import "testing"

func TestChatCommand(t *testing.T) {
	// Test that the command is properly configured
	if chatCmd.Use != "chat" {
		t.Errorf("Expected use 'chat', got %s", chatCmd.Use)
	}

	if chatCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if chatCmd.Long == "" {
		t.Error("Long description should not be empty")
	}

	if chatCmd.RunE == nil {
		t.Error("RunE should not be nil")
	}
}

func TestChatCommand_RejectsArgs(t *testing.T) {
	// We never call RunE here; it would launch the interactive TUI.
	if err := chatCmd.Args(chatCmd, []string{}); err != nil {
		t.Errorf("no args should be accepted: %v", err)
	}
	if err := chatCmd.Args(chatCmd, []string{"extra"}); err == nil {
		t.Error("positional args should be rejected")
	}
}

func TestRunChatFailsFastWithoutService(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	deps := testDeps(nil)
	deps.Client = nil
	baseURLFlag = "http://127.0.0.1:1"
	defer func() { baseURLFlag = "" }()

	// Nothing listens on port 1, so the dial must fail before the TUI starts.
	if err := runChat(deps); err == nil {
		t.Error("expected connection error")
	}
}
