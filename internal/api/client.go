// Package api is the HTTP client for the opmchat server. It implements
// chat.Service over the server's JSON endpoints and carries the session
// cookie issued at login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/errors"
	"github.com/a3music/opmchat/internal/logger"
)

const requestTimeout = 2 * time.Minute

// Client talks to the opmchat server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cookie     string

	// OnCookie is called when the server issues a session cookie, so the
	// caller can persist it. May be nil.
	OnCookie func(cookie string)
}

// NewClient creates a client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SetCookie installs a previously saved session cookie.
func (c *Client) SetCookie(cookie string) {
	c.cookie = cookie
}

// Cookie returns the current session cookie, if any.
func (c *Client) Cookie() string {
	return c.cookie
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Error     string `json:"error,omitempty"`
}

// Send posts a message and returns the reply plus the authoritative session
// id. An empty sessionID asks the server to start a new conversation.
func (c *Client) Send(ctx context.Context, message, sessionID string) (string, string, error) {
	const op = errors.Op("api.Send")

	var out chatResponse
	err := c.doJSON(ctx, op, http.MethodPost, "/chat", chatRequest{
		Message:   message,
		SessionID: sessionID,
	}, &out)
	if err != nil {
		return "", "", err
	}
	if out.Error != "" {
		return "", "", errors.E(op, errors.KindServer, out.Error)
	}
	logger.Debug("api: sent message, session=%s", out.SessionID)
	return out.Response, out.SessionID, nil
}

type chatListResponse struct {
	Sessions []chat.SessionInfo `json:"sessions"`
}

// Sessions returns the sidebar list, most recent first.
func (c *Client) Sessions(ctx context.Context) ([]chat.SessionInfo, error) {
	const op = errors.Op("api.Sessions")

	var out chatListResponse
	if err := c.doJSON(ctx, op, http.MethodGet, "/get_chat_list", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

type historyResponse struct {
	History []chat.Message `json:"history"`
}

// History returns the message log of a specific conversation.
func (c *Client) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	const op = errors.Op("api.History")

	var out historyResponse
	path := "/load_session/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return nil, errors.SessionNotFound(sessionID)
		}
		return nil, err
	}
	return out.History, nil
}

// CurrentHistory returns the message log of whatever conversation the server
// considers current for this login.
func (c *Client) CurrentHistory(ctx context.Context) ([]chat.Message, error) {
	const op = errors.Op("api.CurrentHistory")

	var out historyResponse
	if err := c.doJSON(ctx, op, http.MethodGet, "/get_history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

type newChatResponse struct {
	SessionID string `json:"session_id"`
}

// NewChat asks the server for a fresh conversation id. Requires a login.
func (c *Client) NewChat(ctx context.Context) (string, error) {
	const op = errors.Op("api.NewChat")

	var out newChatResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/new_chat", nil, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// DeleteChat removes a conversation permanently.
func (c *Client) DeleteChat(ctx context.Context, sessionID string) error {
	const op = errors.Op("api.DeleteChat")

	path := "/delete_chat/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, op, http.MethodPost, path, nil, nil); err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return errors.SessionNotFound(sessionID)
		}
		return err
	}
	logger.Info("api: deleted session %s", sessionID)
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Login authenticates and captures the session cookie for later requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	const op = errors.Op("api.Login")

	var out authResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/login", loginRequest{
		Username: username,
		Password: password,
	}, &out); err != nil {
		if errors.Is(err, errors.KindAuth) {
			return errors.LoginFailed("invalid username or password")
		}
		return err
	}
	if out.Error != "" {
		return errors.LoginFailed(out.Error)
	}
	logger.Info("api: logged in as %s", username)
	return nil
}

// RegisterRequest carries the fields of the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Birthday string `json:"birthday"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	const op = errors.Op("api.Register")

	var out authResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/register", req, &out); err != nil {
		return err
	}
	if out.Error != "" {
		return errors.E(op, errors.KindInvalid, out.Error)
	}
	logger.Info("api: registered account %s", req.Username)
	return nil
}

// doJSON performs a request with an optional JSON body and decodes a JSON
// response into out (which may be nil). HTTP status codes are mapped onto
// error kinds: 401 is auth, 404 is not found, any other non-2xx is a server
// error, and transport failures are network errors.
func (c *Client) doJSON(ctx context.Context, op errors.Op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.E(op, errors.KindInvalid, "failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.E(op, errors.KindInvalid, "failed to build request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("api: %s %s failed: %v", method, path, err)
		return errors.RequestFailed(op, err)
	}
	defer resp.Body.Close()

	c.captureCookie(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.AuthRequired(op)
	case resp.StatusCode == http.StatusNotFound:
		return errors.E(op, errors.KindNotFound, fmt.Sprintf("%s not found", path))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail := readErrorDetail(resp.Body)
		logger.Warn("api: %s %s returned %d: %s", method, path, resp.StatusCode, detail)
		return errors.ServerRejected(op, resp.StatusCode, detail)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindServer, "failed to decode response", err)
	}
	return nil
}

// captureCookie stores the session cookie from a Set-Cookie header, if the
// server issued one on this response.
func (c *Client) captureCookie(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name == "session" {
			c.cookie = ck.Name + "=" + ck.Value
			if c.OnCookie != nil {
				c.OnCookie(c.cookie)
			}
			return
		}
	}
}

// readErrorDetail pulls an error message out of a JSON error body, falling
// back to the raw text for non-JSON responses.
func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}

// Interface check
var _ chat.Service = (*Client)(nil)
