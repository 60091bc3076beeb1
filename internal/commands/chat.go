package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/malcolmweb/internal/chat"
	"github.com/diogo/malcolmweb/internal/config"
	"github.com/diogo/malcolmweb/internal/realtime"
	"github.com/diogo/malcolmweb/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Malcolm.

Messages go over the realtime channel; replies arrive in the order the
service produces them. Inside the session, /upload <file> uploads a file
and /optimize requests device tuning recommendations.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(NewDependencies())
	},
}

func runChat(deps *Dependencies) error {
	cfg, err := setup(deps)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer deps.Client.Close()

	session := chat.NewSession()

	// The receive handler is registered here, once, for the life of the
	// channel. Sends never re-register it.
	spin := newSpinner("Connecting to Malcolm")
	spin.start()
	channel, err := realtime.Dial(config.ResolveSocketURL(cfg), session.HandleReceive)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer channel.Close()
	session.Bind(channel)
	spin.stopWithSuccess("Connected")

	return tui.RunChat(deps.Client, session, deps.Collector, cfg.CopyToClipboard, channel.Done())
}
