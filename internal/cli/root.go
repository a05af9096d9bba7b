package cli

import (
	"fmt"
	"os"

	"github.com/nanitex-official/chatbot/internal/config"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "chatbot.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "webhook chat bridge",
	Long:  "chatbot forwards chat messages to a configured webhook and relays the reply back to the client.",

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file. The default path may be absent, in
// which case defaults and environment variables apply; an explicit
// --config must exist.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if rootCmd.PersistentFlags().Changed("config") {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOptional(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
