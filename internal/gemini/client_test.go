package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key test-key, got %q", r.URL.Query().Get("key"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Fatalf("unexpected contents: %+v", req.Contents)
		}
		if got := req.Contents[0].Parts[0].Text; got == nil || *got != "User: hi\nBot:" {
			t.Errorf("unexpected prompt %v", got)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello there"}],"role":"model"}}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/v1beta/models/gemini:generateContent", "test-key", 5*time.Second)

	result, err := c.Generate(context.Background(), "User: hi\nBot:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "hello there" {
		t.Errorf("expected 'hello there', got %q", result)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "bad-key", 5*time.Second)

	_, err := c.Generate(context.Background(), "hi")
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>502 Bad Gateway</html>`},
		{"empty candidates", `{"candidates":[]}`},
		{"null candidates", `{"candidates":null}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"no content", `{"candidates":[{"finishReason":"SAFETY"}]}`},
		{"part without text", `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, "k", 5*time.Second)
			_, err := c.Generate(context.Background(), "hi")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrNoCandidates) {
				t.Errorf("expected a hard error, got ErrNoCandidates")
			}
		})
	}
}

func TestGenerate_ErrorOmitsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	u := server.URL
	server.Close()

	c := NewClient(u, "SUPERSECRET", time.Second)
	_, err := c.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if strings.Contains(err.Error(), "SUPERSECRET") {
		t.Errorf("error exposes the api key: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "api call: ") {
		t.Errorf("expected api call error, got %v", err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient(server.URL, "k", 20*time.Millisecond)
	_, err := c.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "api call") {
		t.Errorf("expected api call error, got %v", err)
	}
}

func TestEndpoint_PreservesExistingQuery(t *testing.T) {
	c := NewClient("https://example.test/v1/models/m:generateContent?alt=json", "abc", time.Second)
	got, err := c.endpoint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.test/v1/models/m:generateContent?alt=json&key=abc" {
		t.Errorf("unexpected endpoint %q", got)
	}
}
