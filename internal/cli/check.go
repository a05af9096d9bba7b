package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/nanitex-official/chatbot/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkConfigCmd)
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the configuration and print the effective settings",
	RunE:  checkConfig,
}

func checkConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if cmd != nil {
		out = cmd.OutOrStdout()
	}
	printConfig(out, cfg)

	return cfg.RequireWebhook()
}

func printConfig(w io.Writer, cfg *config.Config) {
	webhookURL := cfg.Webhook.URL
	if webhookURL == "" {
		webhookURL = "(not set)"
	}
	timeout := "none"
	if cfg.Webhook.Timeout > 0 {
		timeout = cfg.Webhook.Timeout.String()
	}

	rows := [][2]string{
		{"server.addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)},
		{"webhook.url", webhookURL},
		{"webhook.timeout", timeout},
		{"client.gateway_url", cfg.Client.GatewayURL},
		{"client.transcript_entries", fmt.Sprintf("%d", cfg.Client.TranscriptEntries)},
		{"logging", cfg.Logging.Level + "/" + cfg.Logging.Format},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-26s %s\n", r[0], r[1])
	}
}
