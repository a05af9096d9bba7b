package cli

import (
	"fmt"
	"strings"

	"github.com/nanitex-official/chatbot/internal/bridge"
	"github.com/nanitex-official/chatbot/internal/config"
	"github.com/nanitex-official/chatbot/internal/transcript"
	"github.com/nanitex-official/chatbot/internal/tui"
	"github.com/spf13/cobra"
)

var (
	gatewayURL string
	chatStyle  string
)

func init() {
	for _, c := range []*cobra.Command{chatCmd, sendCmd} {
		c.Flags().StringVar(&gatewayURL, "gateway", "", "gateway base URL (overrides client.gateway_url)")
	}
	chatCmd.Flags().StringVar(&chatStyle, "style", "auto", "markdown style for replies (auto, dark, light, notty)")
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat client",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, client, err := newClientSession(cfg)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), session, client, tui.Options{Style: chatStyle})
}

// newClientSession builds the gateway client and an empty session for it.
func newClientSession(cfg *config.Config) (*bridge.Session, *bridge.Client, error) {
	base := cfg.Client.GatewayURL
	if u := strings.TrimSpace(gatewayURL); u != "" {
		base = u
	}

	client, err := bridge.NewClient(base)
	if err != nil {
		return nil, nil, fmt.Errorf("creating gateway client: %w", err)
	}

	capacity := cfg.Client.TranscriptEntries
	if capacity <= 0 {
		capacity = 1
	}
	store, err := transcript.NewMemoryStore(capacity)
	if err != nil {
		return nil, nil, fmt.Errorf("creating transcript: %w", err)
	}

	return bridge.NewSession(store), client, nil
}
