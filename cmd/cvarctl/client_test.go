package main

import "testing"

func TestToWebsocketURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://127.0.0.1:8080", "ws://127.0.0.1:8080/ws"},
		{"https://cvard.example.com", "wss://cvard.example.com/ws"},
		{"http://cvard.example.com/api/", "ws://cvard.example.com/api/ws"},
		{"ws://127.0.0.1:8080", "ws://127.0.0.1:8080/ws"},
	}
	for _, c := range cases {
		got, err := toWebsocketURL(c.in)
		if err != nil {
			t.Fatalf("toWebsocketURL(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("toWebsocketURL(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestToWebsocketURLRejectsScheme(t *testing.T) {
	if _, err := toWebsocketURL("ftp://example.com"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
