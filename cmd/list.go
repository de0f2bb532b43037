package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	sessions, err := svc.Sessions(ctx)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%-24s  %s\n", s.ID, s.Title)
	}
	return nil
}
