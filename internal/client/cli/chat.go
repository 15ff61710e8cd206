package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/supportchat/internal/client/api"
)

// Chat sends one message and prints the reply.
func (a *App) Chat(ctx context.Context, text string) error {
	reply, err := a.api.SendMessage(ctx, a.userID, text)
	if err != nil {
		fmt.Fprintln(a.out, "bot> Sorry, I couldn't get a response. Please try again.")
		fmt.Fprintf(a.out, "     (%s)\n", err)
		return err
	}
	fmt.Fprintf(a.out, "bot> %s\n", reply)
	return nil
}

// History prints the conversation stored for the current id.
func (a *App) History(ctx context.Context) error {
	msgs, err := a.api.History(ctx, a.userID)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load history: %s\n", err)
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintln(a.out, formatMessage(m))
	}
	return nil
}

// Export uploads the transcript and prints the download link.
func (a *App) Export(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to export your chat history.")
		return nil
	}
	exp, err := a.api.ExportHistory(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Export failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Transcript saved as %s\n%s\n", exp.Key, exp.URL)
	return nil
}

func formatMessage(m api.Message) string {
	who := "you"
	if m.Sender == "bot" {
		who = "bot"
	}
	ts := m.Timestamp.Local().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("[%s] %s> %s", ts, who, strings.TrimSpace(m.Text))
}
