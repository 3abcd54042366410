// Package rest implements the session gateway over the platform's HTTP
// API. It deliberately skips the realtime wire protocol: "connecting" a
// session loads the initial state snapshot (guilds and relationships) that
// the realtime gateway would otherwise stream, then idles until the
// session is closed.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chatpool/internal/domain"
	"chatpool/internal/ports"
)

const (
	userAgent       = "chatpool (+https://github.com/chatpool)"
	maxResponseSize = 1 << 20

	// relationship types as reported by the platform
	relationshipBlocked = 2
)

type Gateway struct {
	baseURL string
	client  *http.Client
}

var _ ports.SessionGateway = (*Gateway)(nil)

func NewGateway(baseURL string, client *http.Client) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}

	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (g *Gateway) NewSession(account domain.Account) ports.Session {
	return newSession(g, account)
}

type userPayload struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Email         string `json:"email"`
}

func (p userPayload) ref() domain.UserRef {
	return domain.UserRef{
		ID:            p.ID,
		Username:      p.Username,
		Discriminator: p.Discriminator,
	}
}

type guildPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type relationshipPayload struct {
	ID   string      `json:"id"`
	Type int         `json:"type"`
	User userPayload `json:"user"`
}

type profilePayload struct {
	User    userPayload `json:"user"`
	Bio     string      `json:"bio"`
	Premium bool        `json:"premium"`
}

// do performs one authenticated call and decodes the response into out
// (when non-nil), mapping platform statuses onto the domain taxonomy.
func (g *Gateway) do(ctx context.Context, token, method, path string, out any) error {
	request, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", token)
	request.Header.Set("User-Agent", userAgent)

	response, err := g.client.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := statusError(response.StatusCode, body); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status <= 299:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrAuthenticationFailed
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return &domain.HTTPError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	}
}
