package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// DefaultServerURL is used when no server has been configured.
const DefaultServerURL = "http://localhost:5000"

// Config holds the application configuration
type Config struct {
	ServerURL            string `json:"server_url"`
	Theme                string `json:"theme,omitempty"`                 // UI theme name
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply arrives
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`         // Whether welcome modal has been shown

	// AuthCookie is the session cookie issued by /login, replayed on every
	// request. Empty means not logged in.
	AuthCookie string `json:"auth_cookie,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// Dir returns the path to the config directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".opmchat"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by tests and by
// Load().
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		ServerURL: DefaultServerURL,
		filePath:  path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q must use http or https", c.ServerURL)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// 0600: the auth cookie is a credential
	return os.WriteFile(c.filePath, data, 0600)
}

// GetServerURL returns the configured server URL
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL updates the server URL
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = u
}

// GetTheme returns the saved theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme updates the theme name
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}

// GetAuthCookie returns the stored session cookie, or empty if not logged in
func (c *Config) GetAuthCookie() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthCookie
}

// SetAuthCookie stores the session cookie issued at login
func (c *Config) SetAuthCookie(cookie string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AuthCookie = cookie
}

// ClearAuthCookie removes the stored session cookie
func (c *Config) ClearAuthCookie() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AuthCookie = ""
}

// GetNotificationsEnabled returns whether desktop notifications are on
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// MarkWelcomeShown records that the welcome modal has been displayed
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// IsWelcomeShown returns whether the welcome modal has been displayed
func (c *Config) IsWelcomeShown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// LocalDBPath returns the sqlite database path for the local backend
func LocalDBPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "local.db"), nil
}
