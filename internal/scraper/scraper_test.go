package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantError  bool
		wantName   string
	}{
		{
			name:       "successful fetch",
			body:       `{"name": "Codeforces Round 1000"}`,
			statusCode: http.StatusOK,
			wantName:   "Codeforces Round 1000",
		},
		{
			name:       "HTTP error",
			body:       `{"name": "ignored"}`,
			statusCode: http.StatusServiceUnavailable,
			wantError:  true,
		},
		{
			name:       "malformed JSON",
			body:       `<html>maintenance</html>`,
			statusCode: http.StatusOK,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Verify User-Agent is set
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "contest-radar") {
					t.Errorf("User-Agent = %q, should contain 'contest-radar'", userAgent)
				}
				if r.Method != http.MethodGet {
					t.Errorf("Expected GET request, got %s", r.Method)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var got struct {
				Name string `json:"name"`
			}
			err := New().GetJSON(context.Background(), server.URL, &got)

			if tt.wantError {
				if err == nil {
					t.Error("GetJSON() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetJSON() unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("GetJSON() name = %q, want %q", got.Name, tt.wantName)
			}
		})
	}
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"echo": payload["query"]})
	}))
	defer server.Close()

	var got struct {
		Echo string `json:"echo"`
	}
	err := New().PostJSON(context.Background(), server.URL, map[string]string{"query": "{ upcomingContests { title } }"}, &got)
	if err != nil {
		t.Fatalf("PostJSON() unexpected error: %v", err)
	}
	if got.Echo != "{ upcomingContests { title } }" {
		t.Errorf("PostJSON() echo = %q", got.Echo)
	}
}

func TestGetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="target"><p>Test &amp; Contest</p></div></body></html>`))
	}))
	defer server.Close()

	doc, err := New().GetDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetDocument() unexpected error: %v", err)
	}

	// goquery automatically decodes HTML entities
	if got := doc.Find("#target p").Text(); got != "Test & Contest" {
		t.Errorf("GetDocument() text = %q, want %q", got, "Test & Contest")
	}
}

func TestGetDocument_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := New().GetDocument(context.Background(), server.URL); err == nil {
		t.Error("GetDocument() expected error, got nil")
	}
}

func TestGetJSON_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v map[string]any
	if err := New().GetJSON(ctx, server.URL, &v); err == nil {
		t.Error("GetJSON() expected error for canceled context, got nil")
	}
}

func TestNew(t *testing.T) {
	c := New()

	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.client == nil {
		t.Error("client is nil")
	}
	if c.client.Timeout != 0 {
		t.Errorf("default timeout = %v, want none", c.client.Timeout)
	}
	if c.userAgent != UserAgent {
		t.Errorf("userAgent = %q, want %q", c.userAgent, UserAgent)
	}
}

func TestNew_Options(t *testing.T) {
	hc := &http.Client{}
	c := New(WithHTTPClient(hc), WithTimeout(5*time.Second), WithUserAgent("custom/2.0"))

	if c.client != hc {
		t.Error("WithHTTPClient() did not replace client")
	}
	if c.client.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.client.Timeout)
	}
	if c.userAgent != "custom/2.0" {
		t.Errorf("userAgent = %q, want custom/2.0", c.userAgent)
	}

	if got := New(WithUserAgent("")).userAgent; got != UserAgent {
		t.Errorf("empty WithUserAgent() should keep default, got %q", got)
	}
}
