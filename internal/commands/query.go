package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/malcolmweb/internal/chat"
	"github.com/diogo/malcolmweb/internal/config"
	"github.com/diogo/malcolmweb/internal/models"
	"github.com/diogo/malcolmweb/internal/realtime"
	"github.com/diogo/malcolmweb/internal/render"
)

// Styles for one-shot output
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

// replyTimeout bounds how long a one-shot invocation waits for the first
// receive_message. The channel itself carries no deadline.
const replyTimeout = 60 * time.Second

// runQuery sends a single message over the realtime channel and prints the
// first reply. If rawOutput is true, only the raw response text is printed
// without decoration.
func runQuery(message string, rawOutput bool) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	replies := make(chan models.ReceivePayload, 1)
	onReceive := func(payload models.ReceivePayload) {
		select {
		case replies <- payload:
		default:
		}
	}

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Connecting to Malcolm")
		spin.start()
	}

	channel, err := realtime.Dial(config.ResolveSocketURL(cfg), onReceive)
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to connect"))
		}
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer channel.Close()

	session := chat.NewSession()
	session.Bind(channel)
	session.Send(message)

	if !rawOutput {
		spin.stopWithSuccess("Sent")
		spin = newSpinner("Waiting for reply")
		spin.start()
	}

	var reply models.ReceivePayload
	select {
	case reply = <-replies:
	case <-channel.Done():
		if !rawOutput {
			spin.stopWithError()
		}
		return fmt.Errorf("channel closed before a reply arrived")
	case <-time.After(replyTimeout):
		if !rawOutput {
			spin.stopWithError()
		}
		return fmt.Errorf("no reply within %s", replyTimeout)
	}

	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	text := reply.Response

	// Raw output mode: output only the raw text
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(text)
		return nil
	}

	// Decorated output mode (TTY)
	fmt.Fprintln(os.Stderr)

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(os.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", outputFlag),
		)
		fmt.Fprintln(os.Stderr, successMsg)
		return nil
	}

	termWidth := getTerminalWidth()
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	label := assistantLabelStyle.Render("✦ Malcolm")
	fmt.Println(label)

	renderOpts := render.FromConfig(cfg.Markdown).WithWidth(contentWidth)
	rendered, err := render.Markdown(text, renderOpts)
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	fmt.Println(bubble)

	return nil
}
