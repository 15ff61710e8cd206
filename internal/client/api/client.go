// Package api is the HTTP JSON client of the support chat server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
)

// Session is returned by Signup and Login.
type Session struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Identity is the account behind a bearer token.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Message is one history entry.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Export locates an uploaded transcript.
type Export struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every request; empty clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Signup(ctx context.Context, username, password string) (*Session, error) {
	return c.credentials(ctx, "/api/auth/signup", username, password)
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.credentials(ctx, "/api/auth/login", username, password)
}

func (c *Client) credentials(ctx context.Context, path, username, password string) (*Session, error) {
	var out Session
	req := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the identity of the current token.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage sends text on behalf of userID and returns the assistant reply.
func (c *Client) SendMessage(ctx context.Context, userID, text string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	req := map[string]string{"message": text, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", req, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// History returns the conversation of userID oldest first.
func (c *Client) History(ctx context.Context, userID string) ([]Message, error) {
	var out struct {
		History []Message `json:"history"`
	}
	path := "/api/chat/history?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// ExportHistory asks the server to upload the caller's transcript.
func (c *Client) ExportHistory(ctx context.Context) (*Export, error) {
	var out Export
	if err := c.do(ctx, http.MethodPost, "/api/chat/history/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			apiErr.Message, apiErr.Cause = eb.Message, eb.Error
		} else {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
