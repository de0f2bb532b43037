package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the guide server",
	Long: `Prompts for your username and password and logs in to the guide server.
The session cookie is saved to your config so the chat picks it up.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	creds, err := auth.RunLoginForm()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Login(ctx, creds.Username, creds.Password); err != nil {
		return err
	}

	// The cookie is persisted by the OnCookie hook; save again in case the
	// server set nothing new but the URL override changed.
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	fmt.Printf("Logged in as %s.\n", creds.Username)
	return nil
}
