package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.DBPath != "paperdesk.db" {
		t.Errorf("DBPath = %q, want paperdesk.db", cfg.DBPath)
	}
	if cfg.CatalogFile != "catalog.yaml" {
		t.Errorf("CatalogFile = %q, want catalog.yaml", cfg.CatalogFile)
	}
	if cfg.FetchDelay != time.Second {
		t.Errorf("FetchDelay = %v, want 1s", cfg.FetchDelay)
	}
	if cfg.SessionBackend != "memory" {
		t.Errorf("SessionBackend = %q, want memory", cfg.SessionBackend)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Errorf("RefreshInterval = %v, want 1h", cfg.RefreshInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAPERDESK_LISTEN_PORT", ":9090")
	t.Setenv("PAPERDESK_DB_PATH", "/data/papers.db")
	t.Setenv("PAPERDESK_FETCH_DELAY", "250ms")
	t.Setenv("PAPERDESK_SESSION_BACKEND", "redis")
	t.Setenv("PAPERDESK_SESSION_TTL", "30m")
	t.Setenv("PAPERDESK_ALLOWED_CIDRS", "10.0.0.0/8, 192.168.1.1")
	t.Setenv("PAPERDESK_TRUST_PROXY", "true")

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %q, want :9090", cfg.ListenPort)
	}
	if cfg.DBPath != "/data/papers.db" {
		t.Errorf("DBPath = %q, want /data/papers.db", cfg.DBPath)
	}
	if cfg.FetchDelay != 250*time.Millisecond {
		t.Errorf("FetchDelay = %v, want 250ms", cfg.FetchDelay)
	}
	if cfg.SessionBackend != "redis" {
		t.Errorf("SessionBackend = %q, want redis", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[0] != "10.0.0.0/8" {
		t.Errorf("AllowedCIDRS = %v, want two entries", cfg.AllowedCIDRS)
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should be true")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("PAPERDESK_FETCH_DELAY", "not-a-duration")

	cfg := Load()
	if cfg.FetchDelay != time.Second {
		t.Errorf("FetchDelay = %v, want default 1s on bad value", cfg.FetchDelay)
	}
}

func TestLoadRejectsUnknownSessionBackend(t *testing.T) {
	t.Setenv("PAPERDESK_SESSION_BACKEND", "etcd")

	defer func() {
		if recover() == nil {
			t.Fatal("Load() should panic on unknown session backend")
		}
	}()
	Load()
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , 'b' , \"c\" ", 3},
		{",,", 0},
	}
	for _, tt := range tests {
		if got := splitAndTrim(tt.in); len(got) != tt.want {
			t.Errorf("splitAndTrim(%q) = %v entries, want %d", tt.in, len(got), tt.want)
		}
	}
}
