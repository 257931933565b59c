package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"cvard/internal/broadcast"
	"cvard/internal/cvar"
	"cvard/internal/guard"
	"cvard/internal/httpapi"
)

// newStack assembles the full daemon in-process: registry, hub, guard and
// router, served over httptest.
func newStack(t *testing.T) (*httptest.Server, *cvar.Registry, *broadcast.Hub) {
	t.Helper()
	reg := cvar.NewRegistry()
	reg.MustRegister(guard.VarName, guard.Floor, "tick clock scale")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := broadcast.NewHub(zerolog.New(io.Discard))
	go hub.Run(ctx)

	g, err := guard.Attach(reg, hub, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(reg, g, http.HandlerFunc(hub.ServeWS)))
	t.Cleanup(srv.Close)
	return srv, reg, hub
}

// dialWS connects a broadcast subscriber and waits until the hub has
// registered it, using probe broadcasts: registration is asynchronous
// relative to the upgrade response.
func dialWS(t *testing.T, srv *httptest.Server, hubProbe func(string)) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(10 * time.Millisecond):
				hubProbe("probe")
			}
		}
	}()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("probe read: %v", err)
		}
		if string(msg) == "probe" {
			return conn
		}
	}
}

// readBroadcasts collects n non-probe messages from conn.
func readBroadcasts(t *testing.T, conn *websocket.Conn, n int) []string {
	t.Helper()
	var out []string
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(out) < n {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read (have %d of %d): %v", len(out), n, err)
		}
		if string(msg) == "probe" {
			continue
		}
		out = append(out, string(msg))
	}
	return out
}

func putJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}
