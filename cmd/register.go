package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/api"
	"github.com/a3music/opmchat/internal/auth"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the guide server",
	Long: `Prompts for your details and creates an account on the guide server.
Run "opmchat login" afterwards to start chatting.`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, err := auth.RunRegisterForm()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = client.Register(ctx, api.RegisterRequest{
		Name:     reg.Name,
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
		Age:      reg.Age,
		Birthday: reg.Birthday,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s. Run `opmchat login` to start chatting.\n", reg.Username)
	return nil
}
