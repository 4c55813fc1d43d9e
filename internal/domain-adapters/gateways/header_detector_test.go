package gateways

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractHeaderVersions(t *testing.T) {
	tests := []struct {
		name       string
		server     string
		poweredBy  string
		wantApache string
		wantPHP    string
	}{
		{name: "both disclosed", server: "Apache/2.4.58 (Ubuntu)", poweredBy: "PHP/8.1.27", wantApache: "2.4.58", wantPHP: "8.1.27"},
		{name: "apache only", server: "Apache/2.4.9", wantApache: "2.4.9"},
		{name: "apache without version", server: "Apache", poweredBy: "PHP/8.2.0", wantPHP: "8.2.0"},
		{name: "nginx and php", server: "nginx/1.25.3", poweredBy: "PHP/8.3.1", wantPHP: "8.3.1"},
		{name: "first match wins", server: "Apache/2.4.1 Apache/2.4.99", wantApache: "2.4.1"},
		{name: "php in server ignored", server: "Apache/2.4.58 PHP/8.1.0", wantApache: "2.4.58"},
		{name: "nothing", server: "", poweredBy: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apache, php := ExtractHeaderVersions(tt.server, tt.poweredBy)
			if apache != tt.wantApache {
				t.Errorf("apache = %q, want %q", apache, tt.wantApache)
			}
			if php != tt.wantPHP {
				t.Errorf("php = %q, want %q", php, tt.wantPHP)
			}
		})
	}
}

func TestHTTPHeaderDetector_Detect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Server", "Apache/2.4.9 (Unix)")
		w.Header().Set("X-Powered-By", "PHP/8.1.27")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	detector := NewHTTPHeaderDetector(newTestFetcher(0), nil)

	got, err := detector.Detect(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if got.ApacheVersion != "2.4.9" {
		t.Errorf("ApacheVersion = %s, want 2.4.9", got.ApacheVersion)
	}
	if got.PHPVersion != "8.1.27" {
		t.Errorf("PHPVersion = %s, want 8.1.27", got.PHPVersion)
	}
	if got.ServerHeader != "Apache/2.4.9 (Unix)" {
		t.Errorf("ServerHeader = %s", got.ServerHeader)
	}
	if got.PoweredBy != "PHP/8.1.27" {
		t.Errorf("PoweredBy = %s", got.PoweredBy)
	}
	if got.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", got.StatusCode)
	}
}

func TestHTTPHeaderDetector_Detect_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/home", http.StatusFound)
	})
	mux.HandleFunc("/home", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Server", "Apache/2.4.58")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	detector := NewHTTPHeaderDetector(newTestFetcher(0), nil)

	got, err := detector.Detect(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got.ApacheVersion != "2.4.58" {
		t.Errorf("ApacheVersion = %q, want 2.4.58", got.ApacheVersion)
	}
	if got.URL != server.URL+"/home" {
		t.Errorf("URL = %s, want %s/home", got.URL, server.URL)
	}
}

func TestHTTPHeaderDetector_Detect_NoHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	detector := NewHTTPHeaderDetector(newTestFetcher(0), nil)

	got, err := detector.Detect(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got.ApacheVersion != "" || got.PHPVersion != "" {
		t.Errorf("versions = %q, %q, want empty", got.ApacheVersion, got.PHPVersion)
	}
	if got.ServerHeader != "" || got.PoweredBy != "" {
		t.Errorf("headers = %q, %q, want empty", got.ServerHeader, got.PoweredBy)
	}
}

func TestHTTPHeaderDetector_Detect_InvalidURL(t *testing.T) {
	detector := NewHTTPHeaderDetector(newTestFetcher(0), nil)

	for _, raw := range []string{"", "example.com", "ftp://example.com", "https://"} {
		if _, err := detector.Detect(context.Background(), raw); err == nil {
			t.Errorf("Detect(%q) = nil error, want error", raw)
		}
	}
}
