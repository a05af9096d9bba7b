package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nanitex-official/chatbot/internal/bridge"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message through the gateway and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, client, err := newClientSession(cfg)
	if err != nil {
		return err
	}

	return sendOnce(cmd.Context(), session, client, strings.Join(args, " "), cmd.OutOrStdout())
}

// sendOnce submits text and prints the reply. A failed exchange is
// reported as an error carrying the session's error text.
func sendOnce(ctx context.Context, session *bridge.Session, sender bridge.Sender, text string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := session.Submit(ctx, sender, text); err != nil {
		if errors.Is(err, bridge.ErrEmptyInput) {
			return errors.New("message must not be empty")
		}
		return err
	}

	st := session.State()
	if st.Phase == bridge.Failed {
		return errors.New(st.Err)
	}
	fmt.Fprintln(out, st.Reply)
	return nil
}
