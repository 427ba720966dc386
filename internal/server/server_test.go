package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"8080":  ":8080",
		":9090": ":9090",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_WriteTimeout(t *testing.T) {
	if got := New(0).newHTTPServer(":0", http.NotFoundHandler()).WriteTimeout; got != defaultWriteTimeout {
		t.Fatalf("default write timeout = %s, want %s", got, defaultWriteTimeout)
	}
	if got := New(time.Minute).newHTTPServer(":0", http.NotFoundHandler()).WriteTimeout; got != time.Minute {
		t.Fatalf("write timeout = %s, want 1m", got)
	}
}

func TestShutdown_BeforeRunIsNoop(t *testing.T) {
	if err := New(0).Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
