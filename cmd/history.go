package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/api"
	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Print a conversation's message log",
	Long: `Prints a conversation's messages to stdout. With no argument it prints
the remembered conversation, or whatever the server considers current.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, closer, err := newService(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var history []chat.Message
	switch {
	case len(args) == 1:
		history, err = svc.History(ctx, args[0])
	default:
		pointerPath, perr := sessionPointerPath()
		if perr != nil {
			return perr
		}
		if id, _ := store.New(pointerPath).Current(); id != "" {
			history, err = svc.History(ctx, id)
			break
		}
		// No remembered conversation; ask the server what it considers
		// current. Guest mode has no server-side notion of current.
		client, ok := svc.(*api.Client)
		if !ok {
			fmt.Println("No conversation remembered.")
			return nil
		}
		history, err = client.CurrentHistory(ctx)
	}
	if err != nil {
		return err
	}

	if len(history) == 0 {
		fmt.Println("No messages.")
		return nil
	}

	for _, m := range history {
		label := "Guide"
		if m.Sender == chat.SenderUser {
			label = "You"
		}
		fmt.Printf("%s: %s\n\n", label, m.Content)
	}
	return nil
}
