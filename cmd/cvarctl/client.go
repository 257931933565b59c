package main

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

	"github.com/gorilla/websocket"

	"cvard/pkg/types"
)

// apiClient is a thin wrapper over the daemon's HTTP surface.
type apiClient struct {
	base string
	hc   http.Client
}

func (c *apiClient) do(method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, strings.TrimRight(c.base, "/")+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr types.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) list() (types.CvarsResponse, error) {
	var out types.CvarsResponse
	err := c.do(http.MethodGet, "/cvars", nil, &out)
	return out, err
}

func (c *apiClient) get(name string) (types.CvarInfo, error) {
	var out types.CvarInfo
	err := c.do(http.MethodGet, "/cvars/"+url.PathEscape(name), nil, &out)
	return out, err
}

func (c *apiClient) set(name string, value int64) (types.CvarInfo, error) {
	var out types.CvarInfo
	err := c.do(http.MethodPut, "/cvars/"+url.PathEscape(name), types.SetCvarRequest{Value: value}, &out)
	return out, err
}

func (c *apiClient) roundEnd() (types.RoundEndResponse, error) {
	var out types.RoundEndResponse
	err := c.do(http.MethodPost, "/round/end", nil, &out)
	return out, err
}

// watch connects to /ws and invokes fn for every broadcast until ctx ends
// or the connection drops.
func (c *apiClient) watch(ctx context.Context, fn func(msg string)) error {
	wsURL, err := toWebsocketURL(c.base)
	if err != nil {
		return err
	}
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(string(msg))
	}
}

func toWebsocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
