package cmd

import (
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/api"
	"github.com/a3music/opmchat/internal/app"
	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/config"
	"github.com/a3music/opmchat/internal/localstore"
	"github.com/a3music/opmchat/internal/logger"
	"github.com/a3music/opmchat/internal/store"
)

var (
	debugMode             bool
	quietMode             bool
	localMode             bool
	serverURL             string
	themeName             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "opmchat",
	Short: "Terminal chat client for the OPM music guide",
	Long: `Opmchat is a terminal chat client for the OPM music guide, a chatbot
that answers questions about Original Pilipino Music. It talks to a guide
server over HTTP, or runs fully offline against a local database with --local.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Guide server URL (overrides config)")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Chroma style for code blocks (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Use the local database instead of the guide server (guest mode)")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("opmchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("opmchat %s\n", version)
}

// loadConfig loads the config and applies the --server override
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if serverURL != "" {
		cfg.SetServerURL(serverURL)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if themeName != "" {
		cfg.SetTheme(themeName)
	}
	return cfg, nil
}

// newAPIClient builds an HTTP client that replays the saved auth cookie and
// persists any refreshed one the server hands back.
func newAPIClient(cfg *config.Config) *api.Client {
	client := api.NewClient(cfg.GetServerURL())
	client.SetCookie(cfg.GetAuthCookie())
	client.OnCookie = func(cookie string) {
		cfg.SetAuthCookie(cookie)
		if err := cfg.Save(); err != nil {
			logger.Warn("cmd: could not persist auth cookie: %v", err)
		}
	}
	return client
}

// newService picks the chat backend: the guide server, or the local database
// in guest mode. The returned closer is nil for the HTTP backend.
func newService(cfg *config.Config) (chat.Service, func() error, error) {
	if localMode {
		dbPath, err := config.LocalDBPath()
		if err != nil {
			return nil, nil, err
		}
		ls, err := localstore.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening local database: %w", err)
		}
		return ls, ls.Close, nil
	}
	return newAPIClient(cfg), nil, nil
}

// sessionPointerPath is where the active conversation id is remembered
// between runs
func sessionPointerPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
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

	pointerPath, err := sessionPointerPath()
	if err != nil {
		return err
	}

	defer logger.Close()

	m := app.New(cfg, svc, store.New(pointerPath), version, localMode)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
